package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/theirongolddev/roombudget/internal/estimate"
	"github.com/theirongolddev/roombudget/internal/model"
)

const maxBodyBytes = 1 << 20

// ItemInput overrides one item of the default selection. Nil fields keep
// the catalog default.
type ItemInput struct {
	Enabled     *bool    `json:"enabled"`
	Quantity    *int     `json:"quantity" validate:"omitempty,min=0"`
	CustomPrice *float64 `json:"custom_price" validate:"omitempty,min=0"`
}

// AddOnsInput overrides the service's default add-ons field by field.
type AddOnsInput struct {
	DeliveryPct    *float64 `json:"delivery_pct" validate:"omitempty,min=0"`
	WhiteGlove     *bool    `json:"white_glove"`
	AssemblyPct    *float64 `json:"assembly_pct" validate:"omitempty,min=0"`
	ProtectionPct  *float64 `json:"protection_pct" validate:"omitempty,min=0"`
	TaxPct         *float64 `json:"tax_pct" validate:"omitempty,min=0"`
	ContingencyPct *float64 `json:"contingency_pct" validate:"omitempty,min=0"`
	Promo          *float64 `json:"promo" validate:"omitempty,min=0"`
}

// EstimateRequest is the body of POST /v1/estimate.
type EstimateRequest struct {
	Brand     string               `json:"brand" validate:"required"`
	Room      string               `json:"room" validate:"required"`
	Tier      string               `json:"tier" validate:"omitempty,oneof=lowest blended highest custom good better best"`
	Selection map[string]ItemInput `json:"selection" validate:"omitempty,dive"`
	AddOns    *AddOnsInput         `json:"add_ons"`
	Save      bool                 `json:"save"`
}

// EstimateResponse is returned by POST /v1/estimate.
type EstimateResponse struct {
	Brand   string       `json:"brand"`
	Room    string       `json:"room"`
	Tier    model.Tier   `json:"tier"`
	AddOns  model.AddOns `json:"add_ons"`
	Lines   []model.Line `json:"lines"`
	Totals  model.Totals `json:"totals"`
	QuoteID string       `json:"quote_id,omitempty"`
}

// ScopeRequest is the body of POST /v1/scope.
type ScopeRequest struct {
	Brand string            `json:"brand" validate:"required"`
	Rooms []model.RoomCount `json:"rooms" validate:"required,min=1,dive"`
}

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func (s *Service) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.cfg.Catalog)
}

func (s *Service) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var req EstimateRequest
	if !s.decode(w, r, &req) {
		return
	}

	sess, err := s.sessionFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	est, err := estimate.Evaluate(s.cfg.Catalog, sess)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	resp := EstimateResponse{
		Brand:  sess.Brand,
		Room:   sess.Room,
		Tier:   sess.Tier,
		AddOns: sess.AddOns,
		Lines:  est.Lines,
		Totals: est.Totals,
	}
	if req.Save {
		if s.cfg.History == nil {
			writeError(w, http.StatusConflict, "quote history is disabled", nil)
			return
		}
		q, err := s.cfg.History.SaveQuote(est)
		if err != nil {
			log.Printf("roombudget: saving quote: %v", err)
			writeError(w, http.StatusInternalServerError, "saving quote failed", nil)
			return
		}
		resp.QuoteID = q.ID
	}

	s.mu.Lock()
	s.estimates++
	s.mu.Unlock()
	s.publishEvent(Event{
		Type:      "estimate",
		Timestamp: time.Now(),
		Brand:     sess.Brand,
		Room:      sess.Room,
		Tier:      string(sess.Tier),
		Total:     est.Totals.Total,
		QuoteID:   resp.QuoteID,
	})

	writeJSON(w, http.StatusOK, resp)
}

func (s *Service) handleScope(w http.ResponseWriter, r *http.Request) {
	var req ScopeRequest
	if !s.decode(w, r, &req) {
		return
	}

	st, err := estimate.ComputeWholeScope(s.cfg.Catalog, req.Rooms, req.Brand)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	s.mu.Lock()
	s.projections++
	s.mu.Unlock()
	s.publishEvent(Event{
		Type:      "scope",
		Timestamp: time.Now(),
		Brand:     req.Brand,
		Total:     st.Blended,
	})

	writeJSON(w, http.StatusOK, st)
}

// sessionFromRequest builds a session from catalog defaults plus the
// request's overrides. Unknown keys are rejected.
func (s *Service) sessionFromRequest(req EstimateRequest) (model.Session, error) {
	cat := s.cfg.Catalog
	if _, ok := cat.Brand(req.Brand); !ok {
		return model.Session{}, fmt.Errorf("%w %q", estimate.ErrUnknownBrand, req.Brand)
	}
	room, ok := cat.Room(req.Room)
	if !ok {
		return model.Session{}, fmt.Errorf("%w %q", estimate.ErrUnknownRoom, req.Room)
	}

	sess := estimate.NewSession(cat, req.Brand, req.Room)
	sess.AddOns = s.cfg.DefaultAddOns
	if req.Tier != "" {
		tier, err := model.ParseTier(req.Tier)
		if err != nil {
			return model.Session{}, err
		}
		sess.Tier = tier
	}

	for key, in := range req.Selection {
		if _, ok := room.Item(key); !ok {
			return model.Session{}, fmt.Errorf("unknown item %q in room %q", key, req.Room)
		}
		it := sess.Selection[key]
		if in.Enabled != nil {
			it.Enabled = *in.Enabled
		}
		if in.Quantity != nil {
			it.Quantity = *in.Quantity
		}
		it.CustomPrice = in.CustomPrice
		sess.Selection[key] = it
	}

	if a := req.AddOns; a != nil {
		applyAddOns(&sess.AddOns, a)
	}
	return sess, nil
}

func applyAddOns(dst *model.AddOns, in *AddOnsInput) {
	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	set(&dst.DeliveryPct, in.DeliveryPct)
	set(&dst.AssemblyPct, in.AssemblyPct)
	set(&dst.ProtectionPct, in.ProtectionPct)
	set(&dst.TaxPct, in.TaxPct)
	set(&dst.ContingencyPct, in.ContingencyPct)
	set(&dst.Promo, in.Promo)
	if in.WhiteGlove != nil {
		dst.WhiteGlove = *in.WhiteGlove
	}
}

// decode reads a JSON body into v and validates it, writing a 400 on failure.
func (s *Service) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", []string{err.Error()})
		return false
	}

	if err := s.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			writeError(w, http.StatusBadRequest, "validation failed", []string{err.Error()})
			return false
		}
		details := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, validationMessage(fe))
		}
		writeError(w, http.StatusBadRequest, "validation failed", details)
		return false
	}
	return true
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Namespace() + " is required"
	case "min":
		return fe.Namespace() + " must be at least " + fe.Param()
	case "oneof":
		return fe.Namespace() + " must be one of: " + fe.Param()
	default:
		return fe.Namespace() + " is invalid"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, details []string) {
	writeJSON(w, status, errorResponse{Error: msg, Details: details})
}
