package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsu24/D-Solar-sub001/internal/domain"
	"github.com/Ramsu24/D-Solar-sub001/internal/knowledge"
)

func TestExtractPackageRef(t *testing.T) {
	tests := []struct {
		message string
		want    PackageRef
	}{
		{"Tell me about ONG-2K-P1", PackageRef{Kind: RefCode, Code: "ONG-2K-P1"}},
		{"info about hyb-6k10-p4 please", PackageRef{Kind: RefCode, Code: "HYB-6K10-P4"}},
		{"details about HYB-3PK", PackageRef{Kind: RefCode, Code: "HYB-3PK"}},
		{"How much is package 2?", PackageRef{Kind: RefOrdinal, Ordinal: "2"}},
		{"pkg #3 sounds good", PackageRef{Kind: RefOrdinal, Ordinal: "3"}},
		{"what about p4", PackageRef{Kind: RefOrdinal, Ordinal: "4"}},
		{"price of ong 2k", PackageRef{Kind: RefGeneric, Prefix: "ONG", Suffix: "2K"}},
		{"ong 2k p1 please", PackageRef{Kind: RefGeneric, Prefix: "ONG", Suffix: "2K-P1"}},
		{"is HYB 6K available", PackageRef{Kind: RefGeneric, Prefix: "HYB", Suffix: "6K"}},
		{"What is net metering?", PackageRef{Kind: RefNone}},
		{"I want solar panels", PackageRef{Kind: RefNone}},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractPackageRef(tt.message))
		})
	}
}

func TestExtractPackageRef_OrdinalInsideCode(t *testing.T) {
	// "-P1" belongs to the code, not an ordinal.
	ref := ExtractPackageRef("Is ONG-2K-P1 good for me?")
	assert.NotEqual(t, RefOrdinal, ref.Kind)
}

func TestRefKind_String(t *testing.T) {
	assert.Equal(t, "code", RefCode.String())
	assert.Equal(t, "ordinal", RefOrdinal.String())
	assert.Equal(t, "generic", RefGeneric.String())
	assert.Equal(t, "none", RefNone.String())
}

func TestPackageResolver_Resolve(t *testing.T) {
	resolver := NewPackageResolver(newTestBase())
	ctx := context.Background()

	tests := []struct {
		message string
		want    string
	}{
		{"Tell me about ONG-2K-P1", "ONG-2K-P1"},
		{"tell me about hyb-6k10-p4", "HYB-6K10-P4"},
		{"How much is package 2?", "ONG-5K-P2"},
		{"package 5", "ONG-5K-P2"},
		{"price of ong 2k", "ONG-2K-P1"},
		{"ong 5k p2 please", "ONG-5K-P2"},
		{"hyb 6k", "HYB-6K10-P4"},
		{"Is HYB-3PK available?", "HYB-3PK"},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			pkg, _, err := resolver.Resolve(ctx, tt.message)
			require.NoError(t, err)
			require.NotNil(t, pkg)
			assert.Equal(t, tt.want, pkg.Code)
		})
	}
}

func TestPackageResolver_RoundTrip(t *testing.T) {
	resolver := NewPackageResolver(newTestBase())
	for _, p := range testPackages {
		pkg, ref, err := resolver.Resolve(context.Background(), "Tell me about "+p.Code)
		require.NoError(t, err)
		require.NotNil(t, pkg, p.Code)
		assert.Equal(t, p.Code, pkg.Code)
		assert.Equal(t, RefCode, ref.Kind)
	}
}

func TestPackageResolver_Misses(t *testing.T) {
	resolver := NewPackageResolver(newTestBase())
	for _, message := range []string{
		"Tell me about ONG-9K-P9",
		"package 9",
		"hyb 12k",
		"What is net metering?",
	} {
		pkg, _, err := resolver.Resolve(context.Background(), message)
		require.NoError(t, err, message)
		assert.Nil(t, pkg, message)
	}
}

func TestPackageResolver_EmptyCatalog(t *testing.T) {
	resolver := NewPackageResolver(knowledge.NewMemoryBase(nil))
	pkg, ref, err := resolver.Resolve(context.Background(), "package 1")
	require.NoError(t, err)
	assert.Nil(t, pkg)
	assert.Equal(t, RefOrdinal, ref.Kind)
}

func TestPackageResolver_StorageFailure(t *testing.T) {
	resolver := NewPackageResolver(failingBase{})
	_, _, err := resolver.Resolve(context.Background(), "package 1")
	require.Error(t, err)
	assert.True(t, domain.IsType(err, domain.ErrorTypeStorage))
}

func TestContainsToken(t *testing.T) {
	assert.True(t, containsToken("IS HYB-3PK AVAILABLE?", "HYB-3PK"))
	assert.True(t, containsToken("HYB-3PK", "HYB-3PK"))
	assert.False(t, containsToken("XHYB-3PK", "HYB-3PK"))
	assert.False(t, containsToken("HYB-3PKS", "HYB-3PK"))
	assert.True(t, containsToken("XHYB-3PK OR HYB-3PK", "HYB-3PK"))
	assert.False(t, containsToken("NOTHING HERE", "HYB-3PK"))
}

func TestFuzzyCodePattern(t *testing.T) {
	re := fuzzyCodePattern("HYB", "6K")
	assert.True(t, re.MatchString("HYB-6K10-P4"))
	assert.True(t, re.MatchString("hyb-6k10-p4"))
	assert.False(t, re.MatchString("ONG-6K-P1"))
	assert.False(t, re.MatchString("HYB-3PK"))
}
