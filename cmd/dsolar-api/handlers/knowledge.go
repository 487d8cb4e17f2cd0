package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Ramsu24/D-Solar-sub001/internal/domain"
	"github.com/Ramsu24/D-Solar-sub001/internal/observability"
)

// Catalog is the read-write knowledge store behind the admin endpoints.
type Catalog interface {
	ListFAQs(ctx context.Context) ([]domain.FAQ, error)
	GetFAQ(ctx context.Context, id string) (*domain.FAQ, error)
	UpsertFAQ(ctx context.Context, faq *domain.FAQ) error
	DeleteFAQ(ctx context.Context, id string) error

	ListPackages(ctx context.Context) ([]domain.Package, error)
	FindPackageByCode(ctx context.Context, code string) (*domain.Package, error)
	UpsertPackage(ctx context.Context, pkg *domain.Package) error
	DeletePackage(ctx context.Context, code string) error
}

// KnowledgeHandler manages FAQs and packages.
type KnowledgeHandler struct {
	log        *observability.Logger
	catalog    Catalog
	invalidate func(ctx context.Context) error
}

// NewKnowledgeHandler creates the admin handler. invalidate runs after every write.
func NewKnowledgeHandler(log *observability.Logger, catalog Catalog, invalidate func(ctx context.Context) error) *KnowledgeHandler {
	return &KnowledgeHandler{log: log, catalog: catalog, invalidate: invalidate}
}

func (h *KnowledgeHandler) changed(ctx context.Context) {
	if h.invalidate == nil {
		return
	}
	if err := h.invalidate(ctx); err != nil {
		h.log.WithContext(ctx).Warn().Err(err).Msg("Failed to invalidate knowledge cache")
	}
}

// ListFAQs handles GET /api/faqs.
func (h *KnowledgeHandler) ListFAQs(w http.ResponseWriter, r *http.Request) {
	faqs, err := h.catalog.ListFAQs(r.Context())
	if err != nil {
		writeDomainError(w, h.log, "list faqs failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"faqs": faqs, "count": len(faqs)})
}

// GetFAQ handles GET /api/faqs/{id}.
func (h *KnowledgeHandler) GetFAQ(w http.ResponseWriter, r *http.Request) {
	faq, err := h.catalog.GetFAQ(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, h.log, "get faq failed", err)
		return
	}
	writeJSON(w, http.StatusOK, faq)
}

// CreateFAQ handles POST /api/faqs. A missing id is generated.
func (h *KnowledgeHandler) CreateFAQ(w http.ResponseWriter, r *http.Request) {
	var faq domain.FAQ
	if !decodeBody(w, r, &faq) {
		return
	}
	if strings.TrimSpace(faq.ID) == "" {
		faq.ID = uuid.NewString()
	}
	h.saveFAQ(w, r, &faq, http.StatusCreated)
}

// UpdateFAQ handles PUT /api/faqs/{id}.
func (h *KnowledgeHandler) UpdateFAQ(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.catalog.GetFAQ(r.Context(), id); err != nil {
		writeDomainError(w, h.log, "get faq failed", err)
		return
	}

	var faq domain.FAQ
	if !decodeBody(w, r, &faq) {
		return
	}
	faq.ID = id
	h.saveFAQ(w, r, &faq, http.StatusOK)
}

func (h *KnowledgeHandler) saveFAQ(w http.ResponseWriter, r *http.Request, faq *domain.FAQ, status int) {
	ctx := r.Context()
	if err := h.catalog.UpsertFAQ(ctx, faq); err != nil {
		writeDomainError(w, h.log, "save faq failed", err)
		return
	}
	h.changed(ctx)

	saved, err := h.catalog.GetFAQ(ctx, faq.ID)
	if err != nil {
		writeDomainError(w, h.log, "get faq failed", err)
		return
	}
	writeJSON(w, status, saved)
}

// DeleteFAQ handles DELETE /api/faqs/{id}.
func (h *KnowledgeHandler) DeleteFAQ(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.catalog.DeleteFAQ(ctx, chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, h.log, "delete faq failed", err)
		return
	}
	h.changed(ctx)
	w.WriteHeader(http.StatusNoContent)
}

// ListPackages handles GET /api/packages.
func (h *KnowledgeHandler) ListPackages(w http.ResponseWriter, r *http.Request) {
	pkgs, err := h.catalog.ListPackages(r.Context())
	if err != nil {
		writeDomainError(w, h.log, "list packages failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"packages": pkgs, "count": len(pkgs)})
}

// GetPackage handles GET /api/packages/{code}.
func (h *KnowledgeHandler) GetPackage(w http.ResponseWriter, r *http.Request) {
	pkg, err := h.catalog.FindPackageByCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeDomainError(w, h.log, "get package failed", err)
		return
	}
	writeJSON(w, http.StatusOK, pkg)
}

// CreatePackage handles POST /api/packages.
func (h *KnowledgeHandler) CreatePackage(w http.ResponseWriter, r *http.Request) {
	var pkg domain.Package
	if !decodeBody(w, r, &pkg) {
		return
	}
	h.savePackage(w, r, &pkg, http.StatusCreated)
}

// UpdatePackage handles PUT /api/packages/{code}.
func (h *KnowledgeHandler) UpdatePackage(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if _, err := h.catalog.FindPackageByCode(r.Context(), code); err != nil {
		writeDomainError(w, h.log, "get package failed", err)
		return
	}

	var pkg domain.Package
	if !decodeBody(w, r, &pkg) {
		return
	}
	pkg.Code = code
	h.savePackage(w, r, &pkg, http.StatusOK)
}

func (h *KnowledgeHandler) savePackage(w http.ResponseWriter, r *http.Request, pkg *domain.Package, status int) {
	ctx := r.Context()
	if err := h.catalog.UpsertPackage(ctx, pkg); err != nil {
		writeDomainError(w, h.log, "save package failed", err)
		return
	}
	h.changed(ctx)

	saved, err := h.catalog.FindPackageByCode(ctx, pkg.Code)
	if err != nil {
		writeDomainError(w, h.log, "get package failed", err)
		return
	}
	writeJSON(w, status, saved)
}

// DeletePackage handles DELETE /api/packages/{code}.
func (h *KnowledgeHandler) DeletePackage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.catalog.DeletePackage(ctx, chi.URLParam(r, "code")); err != nil {
		writeDomainError(w, h.log, "delete package failed", err)
		return
	}
	h.changed(ctx)
	w.WriteHeader(http.StatusNoContent)
}
