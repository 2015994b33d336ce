// Package service exposes the proof engine over HTTP: verifying proof
// documents, proving formulas or producing counterexamples, and deciding
// a formula set between a model and a proof of absurdity. The transport
// is HTTP/3; handlers are plain net/http so they can also be served and
// tested over TCP.
package service

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/taut-lang/taut/internal/cli"
	"github.com/taut-lang/taut/internal/formula"
	"github.com/taut-lang/taut/internal/proof"
	"github.com/taut-lang/taut/internal/tautology"
)

// VerifyResponse reports the outcome of checking a proof document.
type VerifyResponse struct {
	Valid     bool   `json:"valid"`
	Statement string `json:"statement"`
}

// ProveRequest asks for a proof or counterexample of one formula.
type ProveRequest struct {
	Formula string `json:"formula"`
}

// ProveResponse carries either a proof document or a falsifying model.
type ProveResponse struct {
	Tautology      bool            `json:"tautology"`
	Proof          *proof.Document `json:"proof,omitempty"`
	Counterexample map[string]bool `json:"counterexample"`
}

// ModelsRequest asks for a model of a formula set or a refutation.
type ModelsRequest struct {
	Formulas []string `json:"formulas"`
}

// ModelsResponse carries either a satisfying model or a proof of the
// absurdity ~(p->p) from the formula set.
type ModelsResponse struct {
	Satisfiable bool            `json:"satisfiable"`
	Model       map[string]bool `json:"model"`
	Proof       *proof.Document `json:"proof,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler serves the proof service endpoints.
type Handler struct {
	mux *http.ServeMux
	log *cli.Logger
}

// NewHandler builds the service handler. A nil logger disables logging.
func NewHandler(log *cli.Logger) *Handler {
	if log == nil {
		log = cli.NewLogger(false, false)
	}
	h := &Handler{mux: http.NewServeMux(), log: log}
	h.mux.HandleFunc("/healthz", h.handleHealth)
	h.mux.HandleFunc("/v1/verify", h.handleVerify)
	h.mux.HandleFunc("/v1/prove", h.handleProve)
	h.mux.HandleFunc("/v1/models", h.handleModels)
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("POST required"))
		return
	}
	p, err := proof.ReadDocument(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	valid := p.IsValid()
	h.log.Info("verify %s: valid=%t", p.Statement, valid)
	writeJSON(w, http.StatusOK, VerifyResponse{Valid: valid, Statement: p.Statement.String()})
}

func (h *Handler) handleProve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("POST required"))
		return
	}
	var req ProveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	f, err := formula.Parse(req.Formula)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	p, counterexample, err := tautology.ProofOrCounterexample(f)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	if p != nil {
		doc := proof.Encode(p)
		h.log.Info("prove %s: %d lines", f, len(p.Lines))
		writeJSON(w, http.StatusOK, ProveResponse{Tautology: true, Proof: &doc})
		return
	}
	h.log.Info("prove %s: counterexample %s", f, counterexample)
	writeJSON(w, http.StatusOK, ProveResponse{Counterexample: counterexample})
}

func (h *Handler) handleModels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("POST required"))
		return
	}
	var req ModelsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	formulas := make([]*formula.Formula, len(req.Formulas))
	for i, s := range req.Formulas {
		f, err := formula.Parse(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		formulas[i] = f
	}
	m, p, err := tautology.ModelOrInconsistency(formulas)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	if m != nil {
		writeJSON(w, http.StatusOK, ModelsResponse{Satisfiable: true, Model: m})
		return
	}
	doc := proof.Encode(p)
	writeJSON(w, http.StatusOK, ModelsResponse{Proof: &doc})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, errorResponse{Error: err.Error()})
}
