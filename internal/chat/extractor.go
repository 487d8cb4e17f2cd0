package chat

import (
	"context"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Ramsu24/D-Solar-sub001/internal/domain"
)

// RefKind identifies how a package was referenced in a message.
type RefKind int

const (
	RefNone RefKind = iota
	RefCode
	RefOrdinal
	RefGeneric
)

func (k RefKind) String() string {
	switch k {
	case RefCode:
		return "code"
	case RefOrdinal:
		return "ordinal"
	case RefGeneric:
		return "generic"
	}
	return "none"
}

// PackageRef is a package mention found in free text.
type PackageRef struct {
	Kind    RefKind
	Code    string // RefCode
	Ordinal string // RefOrdinal
	Prefix  string // RefGeneric
	Suffix  string // RefGeneric
}

type refPattern struct {
	kind  RefKind
	re    *regexp.Regexp
	build func(text string, loc []int) (PackageRef, bool)
}

// refPatterns are tried in order; the first that yields a reference wins.
var refPatterns = []refPattern{
	{
		kind: RefCode,
		re:   regexp.MustCompile(`(?i)(?:tell me about|info about|details about|about)\s+([A-Z]+-\d+K\d*-P\d+|[A-Z]+-\d+PK)`),
		build: func(text string, loc []int) (PackageRef, bool) {
			code := strings.ToUpper(strings.Join(strings.Fields(text[loc[2]:loc[3]]), ""))
			return PackageRef{Kind: RefCode, Code: code}, true
		},
	},
	{
		kind: RefOrdinal,
		re:   regexp.MustCompile(`(?i)\b(?:package|pkg|p)\s*#?\s*(\d+)\b`),
		build: func(text string, loc []int) (PackageRef, bool) {
			if gluedToPrevious(text, loc[0]) || insideGenericCode(text, loc[0]) {
				return PackageRef{}, false
			}
			return PackageRef{Kind: RefOrdinal, Ordinal: text[loc[2]:loc[3]]}, true
		},
	},
	{
		kind: RefGeneric,
		re:   genericCode,
		build: func(text string, loc []int) (PackageRef, bool) {
			suffix := strings.ToUpper(strings.TrimSpace(text[loc[4]:loc[5]]))
			suffix = strings.Trim(separatorRun.ReplaceAllString(suffix, "-"), "-")
			if suffix == "" {
				return PackageRef{}, false
			}
			return PackageRef{Kind: RefGeneric, Prefix: strings.ToUpper(text[loc[2]:loc[3]]), Suffix: suffix}, true
		},
	},
}

var (
	genericCode  = regexp.MustCompile(`(?i)\b(ONG|HYB)[-\s]*([0-9]+K?[0-9]*[-\s]*P?[0-9]*)\b`)
	separatorRun = regexp.MustCompile(`[-\s]+`)
)

// insideGenericCode reports whether offset falls within a spelled-out code like "ong 2k p1".
func insideGenericCode(text string, offset int) bool {
	for _, loc := range genericCode.FindAllStringIndex(text, -1) {
		if offset > loc[0] && offset < loc[1] {
			return true
		}
	}
	return false
}

// gluedToPrevious reports whether the match at start continues a code such as "ONG-2K-P1".
func gluedToPrevious(text string, start int) bool {
	if start == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(text[:start])
	return r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// ExtractPackageRef finds the first package reference in a message.
func ExtractPackageRef(raw string) PackageRef {
	for _, p := range refPatterns {
		for _, loc := range p.re.FindAllStringSubmatchIndex(raw, -1) {
			if ref, ok := p.build(raw, loc); ok {
				return ref
			}
		}
	}
	return PackageRef{Kind: RefNone}
}

// PackageResolver turns references into stored packages.
type PackageResolver struct {
	kb domain.KnowledgeBase
}

// NewPackageResolver creates a resolver over kb.
func NewPackageResolver(kb domain.KnowledgeBase) *PackageResolver {
	return &PackageResolver{kb: kb}
}

// Resolve finds the package a message refers to. A nil package with a nil
// error means nothing matched. Only knowledge base failures are returned.
func (r *PackageResolver) Resolve(ctx context.Context, message string) (*domain.Package, PackageRef, error) {
	ref := ExtractPackageRef(message)

	var (
		pkg *domain.Package
		err error
	)
	switch ref.Kind {
	case RefCode:
		pkg, err = r.byCode(ctx, ref.Code)
	case RefOrdinal:
		pkg, err = r.byOrdinal(ctx, ref.Ordinal)
	case RefGeneric:
		pkg, err = r.byGeneric(ctx, ref.Prefix, ref.Suffix)
	}
	if err != nil || pkg != nil {
		return pkg, ref, err
	}

	pkg, err = r.byLiteralMention(ctx, message)
	return pkg, ref, err
}

func (r *PackageResolver) byCode(ctx context.Context, code string) (*domain.Package, error) {
	pkg, err := r.kb.FindPackageByCode(ctx, code)
	if domain.IsNotFound(err) {
		return nil, nil
	}
	return pkg, err
}

func (r *PackageResolver) byOrdinal(ctx context.Context, n string) (*domain.Package, error) {
	pkg, err := r.kb.FindPackageByCodeSuffix(ctx, "-P"+n)
	if err == nil || !domain.IsNotFound(err) {
		return pkg, err
	}

	pkgs, err := r.kb.ListPackages(ctx)
	if err != nil {
		return nil, err
	}
	for i := range pkgs {
		if strings.Contains(pkgs[i].Code, n) {
			return &pkgs[i], nil
		}
	}
	return nil, nil
}

func (r *PackageResolver) byGeneric(ctx context.Context, prefix, suffix string) (*domain.Package, error) {
	if pkg, err := r.byCode(ctx, prefix+"-"+suffix); err != nil || pkg != nil {
		return pkg, err
	}

	pkgs, err := r.kb.ListPackages(ctx)
	if err != nil {
		return nil, err
	}

	// "ong 2k" names a family; take its first P-numbered variant.
	stem := strings.TrimSuffix(prefix+"-"+suffix, "-P") + "-P"
	for i := range pkgs {
		if strings.HasPrefix(strings.ToUpper(pkgs[i].Code), stem) {
			return &pkgs[i], nil
		}
	}

	if pkg, err := r.byCode(ctx, prefix+strings.ReplaceAll(suffix, "-", "")); err != nil || pkg != nil {
		return pkg, err
	}

	fuzzy := fuzzyCodePattern(prefix, suffix)
	for i := range pkgs {
		if fuzzy.MatchString(pkgs[i].Code) {
			return &pkgs[i], nil
		}
	}
	return nil, nil
}

var codeFragment = regexp.MustCompile(`[0-9]+|[A-Z]+`)

// fuzzyCodePattern builds ^PREFIX.*frag1.*frag2... from the suffix fragments.
func fuzzyCodePattern(prefix, suffix string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString("(?i)^")
	b.WriteString(regexp.QuoteMeta(prefix))
	for _, frag := range codeFragment.FindAllString(suffix, -1) {
		b.WriteString(".*")
		b.WriteString(regexp.QuoteMeta(frag))
	}
	return regexp.MustCompile(b.String())
}

func (r *PackageResolver) byLiteralMention(ctx context.Context, message string) (*domain.Package, error) {
	upper := strings.ToUpper(message)
	pkgs, err := r.kb.ListPackages(ctx)
	if err != nil {
		return nil, err
	}
	for i := range pkgs {
		code := strings.ToUpper(pkgs[i].Code)
		if code != "" && containsToken(upper, code) {
			return &pkgs[i], nil
		}
	}
	return nil, nil
}

// containsToken reports whether code appears in text without being part of a longer code.
func containsToken(text, code string) bool {
	for start := 0; ; {
		idx := strings.Index(text[start:], code)
		if idx < 0 {
			return false
		}
		begin, end := start+idx, start+idx+len(code)
		if !codeRune(text[:begin], true) && !codeRune(text[end:], false) {
			return true
		}
		start = begin + 1
	}
}

func codeRune(s string, last bool) bool {
	if s == "" {
		return false
	}
	var r rune
	if last {
		r, _ = utf8.DecodeLastRuneInString(s)
	} else {
		r, _ = utf8.DecodeRuneInString(s)
	}
	return r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
