package googleplaces

import (
	"fmt"
	"io"
	"net/http"
)

// statusError - ответ Google с не-2xx статусом
type statusError struct {
	StatusCode int
	Status     string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %s", e.Status)
}

// statusCheckingTransport превращает не-2xx ответы в ошибку транспорта.
// Библиотека maps сама статус не проверяет и пытается разобрать тело.
type statusCheckingTransport struct {
	next http.RoundTripper
}

func (t *statusCheckingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	// редиректы Place Photo обрабатывает http.Client
	if resp.StatusCode >= 300 && resp.StatusCode < 400 {
		return resp, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &statusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}
	return resp, nil
}
