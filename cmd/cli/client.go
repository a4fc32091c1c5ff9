package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/iho/backoffice/internal/adapter/http/dto"
	"github.com/iho/backoffice/internal/domain"
	"github.com/iho/backoffice/internal/usecase"
)

// apiClient fetches statements from a running backoffice server. It
// implements usecase.StatementComputer so it can drive a StatementSession.
type apiClient struct {
	baseURL string
	client  *http.Client
}

var _ usecase.StatementComputer = (*apiClient)(nil)

func (c *apiClient) ComputeStatement(ctx context.Context, req usecase.StatementRequest) (*domain.Statement, error) {
	endpoint := fmt.Sprintf("%s/api/v1/parties/%s/statement", c.baseURL, url.PathEscape(req.PartyID))

	query := url.Values{}
	query.Set("firm_id", req.FirmID)
	if req.DateFrom != nil {
		query.Set("from", req.DateFrom.Format(domain.DateFormat))
	}
	if req.DateTo != nil {
		query.Set("to", req.DateTo.Format(domain.DateFormat))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr dto.ErrorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, apiErr.Message)
		}
		return nil, fmt.Errorf("server returned %d", resp.StatusCode)
	}

	var statementResp dto.StatementResponse
	if err := json.Unmarshal(body, &statementResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return statementResp.ToDomain()
}
