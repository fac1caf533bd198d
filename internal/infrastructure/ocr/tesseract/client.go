package tesseract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/ptrevisan/gestionale-trasporti/internal/core/domain"
	"github.com/ptrevisan/gestionale-trasporti/internal/infrastructure/resilience"
)

// Client talks to a Tesseract HTTP sidecar. Recognition runs as a single
// attempt through the breaker: a failed scan is reported to the operator,
// not silently re-run.
type Client struct {
	baseURL    string
	language   string
	httpClient *http.Client
	executor   *resilience.Executor
}

func New(baseURL string, executor *resilience.Executor) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   "ita",
		httpClient: &http.Client{Timeout: 90 * time.Second},
		executor:   executor,
	}
}

func (c *Client) Recognize(ctx context.Context, image []byte, mediaType string) (string, error) {
	var text string
	run := func(ctx context.Context) error {
		out, err := c.recognize(ctx, image, mediaType)
		if err != nil {
			return err
		}
		text = out
		return nil
	}

	var err error
	if c.executor != nil {
		err = c.executor.ExecuteOnce(ctx, "ocr.recognize", run, classifyOCRError)
	} else {
		err = run(ctx)
	}
	if err != nil {
		return "", domain.WrapError(domain.ErrExtraction, "ocr recognize", err)
	}
	return text, nil
}

func (c *Client) recognize(ctx context.Context, image []byte, mediaType string) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("options", fmt.Sprintf(`{"languages":[%q]}`, c.language)); err != nil {
		return "", fmt.Errorf("write ocr options: %w", err)
	}
	part, err := writer.CreateFormFile("file", filenameFor(mediaType))
	if err != nil {
		return "", fmt.Errorf("create ocr form file: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return "", fmt.Errorf("write ocr image: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("finalize ocr form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/tesseract", &body)
	if err != nil {
		return "", fmt.Errorf("create ocr request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ocr request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", formatOCRHTTPError(resp)
	}

	var response struct {
		Data struct {
			Stdout string `json:"stdout"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("decode ocr response: %w", err)
	}
	return strings.TrimSpace(response.Data.Stdout), nil
}

func filenameFor(mediaType string) string {
	if strings.Contains(mediaType, "png") {
		return "page.png"
	}
	return "page.jpg"
}

func formatOCRHTTPError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return fmt.Errorf("ocr status: %s", resp.Status)
	}
	return fmt.Errorf("ocr status: %s: %s", resp.Status, msg)
}

func classifyOCRError(err error) resilience.Classification {
	if err == nil {
		return resilience.Classification{}
	}
	return resilience.Classification{Retryable: false, RecordFailure: true}
}
