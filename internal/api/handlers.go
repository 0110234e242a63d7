package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/th3funto/ninja-store/internal/pricing"
)

const maxBodyBytes = 1 << 16

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleProfiles(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, pricing.Profiles())
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, ok := s.resolveProfile(w, r, req.Profile)
	if !ok {
		return
	}

	product := s.defaults.ProductName
	if req.Product != nil {
		product = *req.Product
	}

	in := s.defaults.Inputs
	overrideNumber(&in.ForeignPrice, req.USDPrice)
	overrideNumber(&in.ExchangeRate, req.ExchangeRate)
	overrideNumber(&in.ImportFeePct, req.ImportFeePct)
	overrideNumber(&in.MarginPct, req.MarginPct)
	if req.SmartRounding != nil {
		in.SmartRounding = *req.SmartRounding
	}

	breakdown := pricing.Derive(in)
	s.writeJSON(w, http.StatusOK, QuoteResponse{
		Product:      product,
		Inputs:       in,
		Breakdown:    breakdown,
		Composition:  pricing.Composition(breakdown),
		Profile:      profile,
		Installments: pricing.Project(breakdown.FinalCashPrice, profile),
		Offer:        pricing.OfferText(product, breakdown.FinalCashPrice, profile),
	})
}

func (s *Server) handleInstallments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	profile, ok := s.resolveProfile(w, r, pricing.ProfileID(query.Get("profile")))
	if !ok {
		return
	}

	cash := pricing.ParseAmount(query.Get("cash"))
	s.writeJSON(w, http.StatusOK, InstallmentsResponse{
		Cash:         cash,
		Profile:      profile,
		Installments: pricing.Project(cash, profile),
	})
}

// resolveProfile falls back to the default profile when id is empty.
func (s *Server) resolveProfile(w http.ResponseWriter, r *http.Request, id pricing.ProfileID) (pricing.FeeProfile, bool) {
	if id == "" {
		id = s.defaults.Profile
	}
	profile, err := pricing.Profile(id)
	if errors.Is(err, pricing.ErrUnknownProfile) {
		s.writeError(w, r, http.StatusBadRequest, pricing.ErrUnknownProfile.Error())
		return pricing.FeeProfile{}, false
	}
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, "internal error")
		return pricing.FeeProfile{}, false
	}
	return profile, true
}

func overrideNumber(dst *float64, n *Number) {
	if n != nil {
		*dst = float64(*n)
	}
}

// writeJSON marshals before writing so an unencodable value (an infinite
// price, say) still gets a proper error status.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
		status = http.StatusUnprocessableEntity
		body, _ = json.Marshal(errorResponse{Error: "result is not representable"})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		s.logger.Warn("Failed to write response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.logger.Warn("Request failed",
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.String("error", message))
	s.writeJSON(w, status, errorResponse{Error: message})
}
