package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	nurl "net/url"

	"github.com/suchimauz/hospital-desk/internal/config"
	"github.com/suchimauz/hospital-desk/internal/core/domain"
	"github.com/suchimauz/hospital-desk/internal/core/ports/out"
	"github.com/suchimauz/hospital-desk/internal/utils"
)

// Ограничение на тело ответа, которое попадает в BackendError
const errorBodyLimit = 4096

var _ out.BackendPort = (*BackendAdapter)(nil)

type BackendAdapter struct {
	client  *http.Client
	baseURL string
	logger  out.LoggerPort
}

func NewBackendAdapter(cfg *config.Config, logger out.LoggerPort) *BackendAdapter {
	return &BackendAdapter{
		client:  &http.Client{Timeout: cfg.Backend.Timeout},
		baseURL: cfg.Backend.URL,
		logger:  logger.WithModule("BackendAdapter"),
	}
}

type request struct {
	event       string
	method      string
	path        string
	body        io.Reader
	contentType string
}

// do выполняет запрос с bearer-токеном вызывающего и возвращает тело
// успешного ответа. Неуспешный статус - *domain.BackendError.
func (a *BackendAdapter) do(ctx context.Context, session domain.Session, r request) ([]byte, error) {
	url := a.baseURL + r.path
	req, err := http.NewRequestWithContext(ctx, r.method, url, r.body)
	if err != nil {
		a.logger.Error(r.event+"_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	if session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+session.Token)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(utils.RequestIDHeader, utils.RequestID(ctx))
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error(r.event+"_failed", out.LogFields{
			"method": r.method,
			"path":   r.path,
			"error":  err.Error(),
		})
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		a.logger.Error(r.event+"_failed", out.LogFields{
			"path":  r.path,
			"error": err.Error(),
		})
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body := string(data)
		if len(body) > errorBodyLimit {
			body = body[:errorBodyLimit]
		}
		a.logger.Error(r.event+"_failed", out.LogFields{
			"method": r.method,
			"path":   r.path,
			"status": resp.StatusCode,
		})
		return nil, &domain.BackendError{StatusCode: resp.StatusCode, Body: body}
	}

	a.logger.Debug(r.event+"_success", out.LogFields{
		"method": r.method,
		"path":   r.path,
		"status": resp.StatusCode,
	})

	return data, nil
}

func (a *BackendAdapter) doJSON(ctx context.Context, session domain.Session, event, method, path string, payload interface{}) ([]byte, error) {
	var body io.Reader
	contentType := ""
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%s.encode_failed: %w", event, err)
		}
		body = bytes.NewReader(encoded)
		contentType = "application/json"
	}

	return a.do(ctx, session, request{
		event:       event,
		method:      method,
		path:        path,
		body:        body,
		contentType: contentType,
	})
}

// getList читает список, в каком бы конверте его ни прислали
func getList[T any](ctx context.Context, a *BackendAdapter, session domain.Session, event, path string) ([]T, error) {
	data, err := a.doJSON(ctx, session, event, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	items, err := decodeList[T](data)
	if err != nil {
		a.logger.Error(event+".decode_failed", out.LogFields{
			"path":  path,
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%s.decode_failed: %w", event, err)
	}
	return items, nil
}

func decodeInto[T any](a *BackendAdapter, event string, data []byte) (*T, error) {
	item, err := decodeObject[T](data)
	if err != nil {
		a.logger.Error(event+".decode_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%s.decode_failed: %w", event, err)
	}
	return item, nil
}

func escape(id string) string {
	return nurl.PathEscape(id)
}
