package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Vovarama1992/voice_translator/internal/config"
)

// MyMemoryClient: бесплатный MyMemory API, один запрос на одну пару языков.
type MyMemoryClient struct {
	baseURL string
	email   string
	client  *http.Client
}

func NewMyMemoryClient(cfg config.MyMemoryConfig) *MyMemoryClient {
	return &MyMemoryClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		email:   cfg.Email,
		client:  &http.Client{},
	}
}

type myMemoryResponse struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
	// бывает и числом, и строкой ("403")
	ResponseStatus  json.RawMessage `json:"responseStatus"`
	ResponseDetails string          `json:"responseDetails"`
}

func (c *MyMemoryClient) Translate(ctx context.Context, text, from, to string) (string, error) {
	q := url.Values{}
	q.Set("q", text)
	q.Set("langpair", from+"|"+to)
	if c.email != "" {
		q.Set("de", c.email)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/get?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("mymemory request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("mymemory error (%s): %s", to, body)
	}

	var out myMemoryResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decode mymemory: %w", err)
	}

	if status := parseStatus(out.ResponseStatus); status != http.StatusOK {
		return "", fmt.Errorf("mymemory error (%s): status %d: %s", to, status, out.ResponseDetails)
	}

	return out.ResponseData.TranslatedText, nil
}

func parseStatus(raw json.RawMessage) int {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
