// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taibuivan/jmcomic-api/internal/jm"
	"github.com/taibuivan/jmcomic-api/internal/platform/constants"
	"github.com/taibuivan/jmcomic-api/internal/platform/respond"
)

// DomainProber checks the reachability of the configured upstream domains.
//
// [jm.Factory] is the production implementation.
type DomainProber interface {
	ProbeDomains(ctx context.Context, option *jm.Option) ([]jm.DomainStatus, error)
}

type healthHandler struct {
	option *jm.Option
	prober DomainProber
	logger *slog.Logger
}

// domainView is one entry of GET /health/domains.
type domainView struct {
	Domain    string `json:"domain"`
	OK        bool   `json:"ok"`
	Error     string `json:"error,omitempty"`
	LatencyMS int64  `json:"latency_ms"`
}

// NewHealthHandlers creates the /health and /health/domains http.HandlerFuncs.
//
// A nil option means jm.yaml failed to load; both handlers then answer 500.
func NewHealthHandlers(option *jm.Option, prober DomainProber, logger *slog.Logger) (liveness, domains http.HandlerFunc) {
	handler := &healthHandler{option: option, prober: prober, logger: logger}
	return handler.liveness, handler.domains
}

// liveness handles GET /health. It never touches the network.
func (handler *healthHandler) liveness(writer http.ResponseWriter, request *http.Request) {
	if handler.option == nil {
		respond.Fail(writer, http.StatusInternalServerError, "JMComic option not initialized")
		return
	}
	respond.Status(writer, http.StatusOK, constants.StatusOK, "API service is running")
}

// domains handles GET /health/domains.
func (handler *healthHandler) domains(writer http.ResponseWriter, request *http.Request) {
	if handler.option == nil {
		respond.Fail(writer, http.StatusInternalServerError, "JMComic option not initialized")
		return
	}

	probeCtx, cancel := context.WithTimeout(request.Context(), constants.DomainProbeTimeout)
	defer cancel()

	statuses, err := handler.prober.ProbeDomains(probeCtx, handler.option)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	views := make([]domainView, 0, len(statuses))
	for _, status := range statuses {
		if !status.OK {
			handler.logger.WarnContext(request.Context(), "domain_probe_failed",
				slog.String("domain", status.Domain),
				slog.String("error", status.Error),
			)
		}
		views = append(views, domainView{
			Domain:    status.Domain,
			OK:        status.OK,
			Error:     status.Error,
			LatencyMS: status.Latency.Milliseconds(),
		})
	}

	respond.OK(writer, views)
}
