package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/vocabindex/internal/domain"
)

type browseService interface {
	GetLangvar(ctx context.Context, uid string) (domain.Langvar, error)
	ListLangvars(ctx context.Context) ([]domain.Langvar, error)
	GetPageCount(ctx context.Context, uid string) (int, error)
	GetCharIndex(ctx context.Context, uid string) ([]domain.CharPage, error)
	FindPage(ctx context.Context, uid, query string) (int, error)
}

type translateService interface {
	GetTranslatedPage(ctx context.Context, sourceUID, targetUID string, page int) ([]domain.TranslatedExpr, error)
}

// VocabHandler serves the read-only vocabulary endpoints.
type VocabHandler struct {
	browse    browseService
	translate translateService
	log       *slog.Logger
}

// NewVocabHandler creates a VocabHandler.
func NewVocabHandler(browse browseService, translate translateService, logger *slog.Logger) *VocabHandler {
	return &VocabHandler{
		browse:    browse,
		translate: translate,
		log:       logger.With("handler", "vocab"),
	}
}

type langvarResponse struct {
	UID                   string `json:"uid"`
	LangCode              string `json:"lang_code"`
	VarCode               int    `json:"var_code"`
	Name                  string `json:"name"`
	Script                string `json:"script"`
	ExprCount             int    `json:"expr_count"`
	PageCount             int    `json:"page_count"`
	AnalyzedSourceCount   int    `json:"analyzed_source_count"`
	UnanalyzedSourceCount int    `json:"unanalyzed_source_count"`
}

type charPageResponse struct {
	Char string `json:"char"`
	Page int    `json:"page"`
}

type translationResponse struct {
	ID      int64   `json:"id"`
	Text    string  `json:"text"`
	Quality float64 `json:"quality"`
}

type itemResponse struct {
	ID           int64                 `json:"id"`
	Text         string                `json:"text"`
	Translations []translationResponse `json:"translations"`
}

type vocabResponse struct {
	Langvar   *langvarResponse   `json:"langvar"`
	Target    *langvarResponse   `json:"target"`
	Page      int                `json:"page"`
	LastPage  int                `json:"last_page"`
	PageRange []int              `json:"page_range"`
	CharIndex []charPageResponse `json:"char_index"`
	Items     []itemResponse     `json:"items"`
}

type searchResponse struct {
	Page int `json:"page"`
}

// ListLangvars handles GET /api/langvars.
func (h *VocabHandler) ListLangvars(w http.ResponseWriter, r *http.Request) {
	lvs, err := h.browse.ListLangvars(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]langvarResponse, len(lvs))
	for i, lv := range lvs {
		out[i] = toLangvarResponse(lv)
	}
	writeJSON(w, http.StatusOK, out)
}

// GetLangvar handles GET /api/langvars/{uid}.
func (h *VocabHandler) GetLangvar(w http.ResponseWriter, r *http.Request) {
	uid := r.PathValue("uid")
	if err := domain.ValidateUID(uid); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	lv, err := h.browse.GetLangvar(r.Context(), uid)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toLangvarResponse(lv))
}

// Page handles GET /api/vocab/{uid}?page=N and
// GET /api/vocab/{uid}/{target}?page=N.
//
// An unknown source variety renders an empty page; an unknown target
// variety renders the page without translations. Pages past the last page
// render without items.
func (h *VocabHandler) Page(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	uid := r.PathValue("uid")
	if err := domain.ValidateUID(uid); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	targetUID := r.PathValue("target")
	if targetUID != "" {
		if err := domain.ValidateUID(targetUID); err != nil {
			handleError(h.log, w, r, domain.NewValidationError("target", "must match xxx-000"))
			return
		}
	}
	page, err := parsePage(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := vocabResponse{
		Page:      page,
		PageRange: []int{},
		CharIndex: []charPageResponse{},
		Items:     []itemResponse{},
	}

	lv, err := h.browse.GetLangvar(ctx, uid)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusOK, resp)
		return
	case err != nil:
		handleError(h.log, w, r, err)
		return
	}
	lvResp := toLangvarResponse(lv)
	resp.Langvar = &lvResp

	if targetUID != "" {
		target, err := h.browse.GetLangvar(ctx, targetUID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			targetUID = ""
		case err != nil:
			handleError(h.log, w, r, err)
			return
		default:
			tResp := toLangvarResponse(target)
			resp.Target = &tResp
		}
	}

	if resp.LastPage, err = h.browse.GetPageCount(ctx, uid); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	resp.PageRange = pageRange(page, resp.LastPage)

	chars, err := h.browse.GetCharIndex(ctx, uid)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	for _, c := range chars {
		resp.CharIndex = append(resp.CharIndex, charPageResponse{Char: c.Char, Page: c.Page})
	}

	if page > resp.LastPage {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	items, err := h.translate.GetTranslatedPage(ctx, uid, targetUID, page)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	for _, it := range items {
		resp.Items = append(resp.Items, toItemResponse(it))
	}

	writeJSON(w, http.StatusOK, resp)
}

// Search handles GET /api/vocab/{uid}/search?q=...
func (h *VocabHandler) Search(w http.ResponseWriter, r *http.Request) {
	uid := r.PathValue("uid")
	if err := domain.ValidateUID(uid); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	page, err := h.browse.FindPage(r.Context(), uid, r.URL.Query().Get("q"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, searchResponse{Page: page})
}

func parsePage(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, domain.NewValidationError("page", "must be a positive integer")
	}
	return page, nil
}

// pageRange returns the page links around page, domain.PageRange on each
// side, clamped to [1, last].
func pageRange(page, last int) []int {
	lo := max(1, page-domain.PageRange)
	hi := last
	if page <= last-domain.PageRange {
		hi = page + domain.PageRange
	}
	out := []int{}
	if hi < lo {
		return out
	}
	for i := range hi - lo + 1 {
		out = append(out, lo+i)
	}
	return out
}

func toLangvarResponse(lv domain.Langvar) langvarResponse {
	return langvarResponse{
		UID:                   lv.UID,
		LangCode:              lv.LangCode,
		VarCode:               lv.VarCode,
		Name:                  lv.NameExpr,
		Script:                lv.Script,
		ExprCount:             lv.ExprCount,
		PageCount:             lv.PageCount(),
		AnalyzedSourceCount:   lv.AnalyzedSourceCount,
		UnanalyzedSourceCount: lv.UnanalyzedSourceCount,
	}
}

func toItemResponse(te domain.TranslatedExpr) itemResponse {
	trs := make([]translationResponse, len(te.Translations))
	for i, tr := range te.Translations {
		trs[i] = translationResponse{ID: tr.ExprID, Text: tr.Text, Quality: tr.Quality}
	}
	return itemResponse{ID: te.Expr.ID, Text: te.Expr.Text, Translations: trs}
}
