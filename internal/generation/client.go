package generation

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// TextGenerator requests a JSON-shaped completion for a prompt. The returned
// value conforms to schema (a JSON schema object) as far as the backend
// honors it; callers must still validate what they decode.
type TextGenerator interface {
	InvokeText(ctx context.Context, prompt string, schema map[string]any) (json.RawMessage, error)
}

// ImageGenerator renders an image for a prompt and returns a URL pointing at
// the stored file.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// Uploader stores a raw file and returns a URL for it.
type Uploader interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

// Client talks to a Gemini-style generation REST API.
type Client struct {
	baseURL    string
	apiKey     string
	textModel  string
	imageModel string
	httpClient *http.Client
	uploader   Uploader
	log        *zap.Logger
}

func NewClient(baseURL, apiKey, textModel, imageModel string, timeout time.Duration, uploader Uploader, log *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		textModel:  textModel,
		imageModel: imageModel,
		httpClient: &http.Client{Timeout: timeout},
		uploader:   uploader,
		log:        log,
	}
}

type generateContentRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text,omitempty"`
}

type generationConfig struct {
	ResponseMimeType string         `json:"responseMimeType,omitempty"`
	ResponseSchema   map[string]any `json:"responseSchema,omitempty"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (c *Client) InvokeText(ctx context.Context, prompt string, schema map[string]any) (json.RawMessage, error) {
	reqBody := generateContentRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: prompt}}},
		},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   schema,
		},
	}

	var resp generateContentResponse
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.textModel, c.apiKey)
	if err := c.post(ctx, url, reqBody, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("generation API error %d: %s", resp.Error.Code, resp.Error.Message)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("generation API returned no candidates")
	}

	text := resp.Candidates[0].Content.Parts[0].Text
	if !json.Valid([]byte(text)) {
		return nil, fmt.Errorf("generation API returned non-JSON payload")
	}
	return json.RawMessage(text), nil
}

type predictRequest struct {
	Instances []struct {
		Prompt string `json:"prompt"`
	} `json:"instances"`
	Parameters struct {
		SampleCount int `json:"sampleCount"`
	} `json:"parameters"`
}

type predictResponse struct {
	Predictions []struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
		MimeType           string `json:"mimeType"`
	} `json:"predictions"`
	Error *apiError `json:"error,omitempty"`
}

// GenerateImage renders one image and stores it through the uploader, since
// the predict API returns raw bytes, not a URL.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	var reqBody predictRequest
	reqBody.Instances = append(reqBody.Instances, struct {
		Prompt string `json:"prompt"`
	}{Prompt: prompt})
	reqBody.Parameters.SampleCount = 1

	var resp predictResponse
	url := fmt.Sprintf("%s/models/%s:predict?key=%s", c.baseURL, c.imageModel, c.apiKey)
	if err := c.post(ctx, url, reqBody, &resp); err != nil {
		return "", err
	}
	if resp.Error != nil {
		return "", fmt.Errorf("image API error %d: %s", resp.Error.Code, resp.Error.Message)
	}
	if len(resp.Predictions) == 0 {
		return "", fmt.Errorf("image API returned no predictions")
	}

	data, err := base64.StdEncoding.DecodeString(resp.Predictions[0].BytesBase64Encoded)
	if err != nil {
		return "", fmt.Errorf("decode image payload: %w", err)
	}

	ext := ".png"
	if strings.Contains(resp.Predictions[0].MimeType, "jpeg") {
		ext = ".jpg"
	}
	return c.uploader.Upload(ctx, "poster"+ext, data)
}

func (c *Client) post(ctx context.Context, url string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("generation service unavailable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("generation service returned %d: %s", resp.StatusCode, string(b))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
