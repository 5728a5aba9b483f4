package client

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"viva/internal/domain/entity"
)

// APIClient talks to the Viva REST API. Authenticated calls carry the token
// from the TokenProvider; a 401 forces one token refresh and one retry.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenProvider
}

func NewAPIClient(baseURL string, tokens TokenProvider, httpClient *http.Client) *APIClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		tokens:     tokens,
	}
}

// ListingUpdate carries the fields of a partial listing update; nil fields are
// not sent.
type ListingUpdate struct {
	Titulo    *string          `json:"titulo,omitempty"`
	Descricao *string          `json:"descricao,omitempty"`
	Preco     *float64         `json:"preco,omitempty"`
	ImageURL  *string          `json:"imageUrl,omitempty"`
	Endereco  *entity.Endereco `json:"endereco,omitempty"`

	AreaConstruida   *float64 `json:"area_construida,omitempty"`
	AreaTerreno      *float64 `json:"area_terreno,omitempty"`
	AnoConstrucao    *int     `json:"ano_construcao,omitempty"`
	PadraoAcabamento *string  `json:"padrao_acabamento,omitempty"`
	TipoImovel       *string  `json:"tipo_imovel,omitempty"`
}

type CommentInput struct {
	Titulo string `json:"titulo"`
	Texto  string `json:"texto"`
	Rating int    `json:"rating"`
}

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

type call struct {
	method      string
	path        string
	body        []byte
	contentType string
	auth        bool
}

func jsonCall(method, path string, auth bool, payload interface{}) (call, error) {
	c := call{method: method, path: path, auth: auth}
	if payload == nil {
		return c, nil
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return c, err
	}
	c.body = body
	c.contentType = "application/json"
	return c, nil
}

func (c *APIClient) do(ctx context.Context, rc call, out interface{}) error {
	resp, err := c.send(ctx, rc, false)
	if err != nil {
		return err
	}
	if rc.auth && resp.StatusCode == http.StatusUnauthorized {
		drain(resp)
		resp, err = c.send(ctx, rc, true)
		if err != nil {
			return err
		}
	}
	defer drain(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *APIClient) send(ctx context.Context, rc call, forceRefresh bool) (*http.Response, error) {
	var body io.Reader
	if rc.body != nil {
		body = bytes.NewReader(rc.body)
	}

	req, err := http.NewRequestWithContext(ctx, rc.method, c.baseURL+rc.path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if rc.contentType != "" {
		req.Header.Set("Content-Type", rc.contentType)
	}

	if rc.auth {
		if c.tokens == nil {
			return nil, ErrNotSignedIn
		}
		token, err := c.tokens.Token(ctx, forceRefresh)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.httpClient.Do(req)
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Code = body.Code
		apiErr.Message = body.Message
		apiErr.Detail = body.Error
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

func (c *APIClient) Health(ctx context.Context) error {
	return c.do(ctx, call{method: http.MethodGet, path: "/health"}, nil)
}

// ListAnuncios returns every listing, newest first, filtered by q when set.
func (c *APIClient) ListAnuncios(ctx context.Context, q string) ([]*entity.Anuncio, error) {
	path := "/anuncios"
	if q = strings.TrimSpace(q); q != "" {
		path += "?q=" + url.QueryEscape(q)
	}
	var out []*entity.Anuncio
	if err := c.do(ctx, call{method: http.MethodGet, path: path, auth: true}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *APIClient) GetAnuncio(ctx context.Context, id string) (*entity.Anuncio, error) {
	var out entity.Anuncio
	if err := c.do(ctx, call{method: http.MethodGet, path: "/anuncios/" + url.PathEscape(id)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) ListAnunciosByUser(ctx context.Context, userID string) ([]*entity.Anuncio, error) {
	var out []*entity.Anuncio
	rc := call{method: http.MethodGet, path: "/anuncios/user/" + url.PathEscape(userID), auth: true}
	if err := c.do(ctx, rc, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *APIClient) CreateAnuncio(ctx context.Context, anuncio *entity.Anuncio) (*entity.Anuncio, error) {
	rc, err := jsonCall(http.MethodPost, "/anuncios", true, map[string]interface{}{"anuncioData": anuncio})
	if err != nil {
		return nil, err
	}
	var out entity.Anuncio
	if err := c.do(ctx, rc, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) UpdateAnuncio(ctx context.Context, id string, update ListingUpdate) (*entity.Anuncio, error) {
	rc, err := jsonCall(http.MethodPut, "/anuncios/"+url.PathEscape(id), true, update)
	if err != nil {
		return nil, err
	}
	var out entity.Anuncio
	if err := c.do(ctx, rc, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) DeleteAnuncio(ctx context.Context, id string) error {
	return c.do(ctx, call{method: http.MethodDelete, path: "/anuncios/" + url.PathEscape(id), auth: true}, nil)
}

func (c *APIClient) ListComentarios(ctx context.Context, anuncioID string) ([]*entity.Comentario, error) {
	var out []*entity.Comentario
	rc := call{method: http.MethodGet, path: "/anuncios/" + url.PathEscape(anuncioID) + "/comentarios"}
	if err := c.do(ctx, rc, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *APIClient) CreateComentario(ctx context.Context, anuncioID string, input CommentInput) (*entity.Comentario, error) {
	rc, err := jsonCall(http.MethodPost, "/anuncios/"+url.PathEscape(anuncioID)+"/comentarios", true, input)
	if err != nil {
		return nil, err
	}
	var out entity.Comentario
	if err := c.do(ctx, rc, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) UpdateComentario(ctx context.Context, anuncioID, id string, input CommentInput) (*entity.Comentario, error) {
	path := "/anuncios/" + url.PathEscape(anuncioID) + "/comentarios/" + url.PathEscape(id)
	rc, err := jsonCall(http.MethodPut, path, true, input)
	if err != nil {
		return nil, err
	}
	var out entity.Comentario
	if err := c.do(ctx, rc, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) DeleteComentario(ctx context.Context, anuncioID, id string) error {
	path := "/anuncios/" + url.PathEscape(anuncioID) + "/comentarios/" + url.PathEscape(id)
	return c.do(ctx, call{method: http.MethodDelete, path: path, auth: true}, nil)
}

func (c *APIClient) ListFavorites(ctx context.Context) ([]*entity.Anuncio, error) {
	var out []*entity.Anuncio
	if err := c.do(ctx, call{method: http.MethodGet, path: "/favorites", auth: true}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *APIClient) AddFavorite(ctx context.Context, anuncioID string) error {
	rc, err := jsonCall(http.MethodPost, "/favorites", true, map[string]string{"anuncioId": anuncioID})
	if err != nil {
		return err
	}
	return c.do(ctx, rc, nil)
}

func (c *APIClient) RemoveFavorite(ctx context.Context, anuncioID string) error {
	return c.do(ctx, call{method: http.MethodDelete, path: "/favorites/" + url.PathEscape(anuncioID), auth: true}, nil)
}

func (c *APIClient) ReorderFavorites(ctx context.Context, anuncioIDs []string) error {
	if anuncioIDs == nil {
		anuncioIDs = []string{}
	}
	rc, err := jsonCall(http.MethodPatch, "/favorites/order", true, map[string][]string{"anuncioIds": anuncioIDs})
	if err != nil {
		return err
	}
	return c.do(ctx, rc, nil)
}

func (c *APIClient) GetUser(ctx context.Context, uid string) (*entity.User, error) {
	var out entity.User
	if err := c.do(ctx, call{method: http.MethodGet, path: "/users/" + url.PathEscape(uid), auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) Geocode(ctx context.Context, address string) (*Coordinates, error) {
	var out Coordinates
	rc := call{method: http.MethodGet, path: "/geocode?address=" + url.QueryEscape(address), auth: true}
	if err := c.do(ctx, rc, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadImage sends an image as multipart field "file" and returns its public URL.
func (c *APIClient) UploadImage(ctx context.Context, filename, contentType string, image io.Reader) (string, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+escapeQuotes(filename)+`"`)
	header.Set("Content-Type", contentType)
	part, err := form.CreatePart(header)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, image); err != nil {
		return "", err
	}
	if err := form.Close(); err != nil {
		return "", err
	}

	rc := call{
		method:      http.MethodPost,
		path:        "/uploads",
		body:        buf.Bytes(),
		contentType: form.FormDataContentType(),
		auth:        true,
	}
	var out struct {
		URL string `json:"url"`
	}
	if err := c.do(ctx, rc, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
