package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nexusretail/nexus-backend/internal/config"
	"github.com/nexusretail/nexus-backend/internal/domain"
)

// ReportGateway produces the executive report text for a company. The
// generation itself happens in an external service; we only relay it.
type ReportGateway interface {
	GenerateExecutiveReport(ctx context.Context, empresaID int64) (string, error)
}

// HTTPReportGateway calls the report gateway over plain HTTP. The
// response body is opaque text and is returned untouched.
type HTTPReportGateway struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

func NewHTTPReportGateway(cfg config.ReportConfig) *HTTPReportGateway {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTPReportGateway{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(cfg.GatewayURL, "/"),
		apiKey:  cfg.APIKey,
	}
}

func (g *HTTPReportGateway) GenerateExecutiveReport(ctx context.Context, empresaID int64) (string, error) {
	url := fmt.Sprintf("%s/reports/executive?empresa_id=%d", g.baseURL, empresaID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return "", fmt.Errorf("build report request: %w", err)
	}
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("report gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read report response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("report gateway returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return string(body), nil
}

// ReportService gates executive report generation behind the management
// roles.
type ReportService struct {
	gateway ReportGateway
}

func NewReportService(gateway ReportGateway) *ReportService {
	return &ReportService{gateway: gateway}
}

func (s *ReportService) ExecutiveReport(ctx context.Context, actor domain.Actor) (string, error) {
	if !actor.CanViewReports() {
		return "", domain.ErrForbidden
	}
	return s.gateway.GenerateExecutiveReport(ctx, actor.EmpresaID)
}
