package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
)

// TokenProvider hands out the bearer token for API calls. forceRefresh
// bypasses any cached token.
type TokenProvider interface {
	Token(ctx context.Context, forceRefresh bool) (string, error)
}

// Authenticator is the sign-in side of the identity provider.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (uid string, err error)
	SignOut()
}

const (
	defaultIdentityToolkitURL = "https://identitytoolkit.googleapis.com"
	defaultSecureTokenURL     = "https://securetoken.googleapis.com"

	// tokens this close to expiry are refreshed.
	expirySkew = time.Minute
)

// FirebaseTokenProvider signs in with email and password through the Firebase
// Auth REST API and keeps the ID token fresh with the refresh token.
type FirebaseTokenProvider struct {
	apiKey             string
	httpClient         *http.Client
	identityToolkitURL string
	secureTokenURL     string
	now                func() time.Time

	mu           sync.Mutex
	uid          string
	idToken      string
	refreshToken string
	expiresAt    time.Time
}

type TokenOption func(*FirebaseTokenProvider)

func WithTokenHTTPClient(c *http.Client) TokenOption {
	return func(p *FirebaseTokenProvider) { p.httpClient = c }
}

// WithEndpoints overrides the Identity Toolkit and Secure Token base URLs.
func WithEndpoints(identityToolkitURL, secureTokenURL string) TokenOption {
	return func(p *FirebaseTokenProvider) {
		p.identityToolkitURL = strings.TrimRight(identityToolkitURL, "/")
		p.secureTokenURL = strings.TrimRight(secureTokenURL, "/")
	}
}

func NewFirebaseTokenProvider(apiKey string, opts ...TokenOption) *FirebaseTokenProvider {
	p := &FirebaseTokenProvider{
		apiKey:             apiKey,
		httpClient:         &http.Client{Timeout: 15 * time.Second},
		identityToolkitURL: defaultIdentityToolkitURL,
		secureTokenURL:     defaultSecureTokenURL,
		now:                time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type signInResponse struct {
	LocalID      string `json:"localId"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

type refreshResponse struct {
	UserID       string `json:"user_id"`
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    string `json:"expires_in"`
}

type identityError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (p *FirebaseTokenProvider) SignIn(ctx context.Context, email, password string) (string, error) {
	body, err := json.Marshal(map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return "", err
	}

	endpoint := p.identityToolkitURL + "/v1/accounts:signInWithPassword?key=" + url.QueryEscape(p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(body)))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	var out signInResponse
	if err := p.send(req, &out); err != nil {
		return "", err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.uid = out.LocalID
	p.store(out.IDToken, out.RefreshToken, out.ExpiresIn)
	return out.LocalID, nil
}

func (p *FirebaseTokenProvider) SignOut() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.uid = ""
	p.idToken = ""
	p.refreshToken = ""
	p.expiresAt = time.Time{}
}

func (p *FirebaseTokenProvider) UID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.uid
}

func (p *FirebaseTokenProvider) Token(ctx context.Context, forceRefresh bool) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.refreshToken == "" {
		return "", ErrNotSignedIn
	}
	if !forceRefresh && p.idToken != "" && p.now().Add(expirySkew).Before(p.expiresAt) {
		return p.idToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", p.refreshToken)

	endpoint := p.secureTokenURL + "/v1/token?key=" + url.QueryEscape(p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var out refreshResponse
	if err := p.send(req, &out); err != nil {
		return "", err
	}

	p.store(out.IDToken, out.RefreshToken, out.ExpiresIn)
	return p.idToken, nil
}

// store must be called with mu held. The token's own exp claim wins over
// expiresIn when it can be read.
func (p *FirebaseTokenProvider) store(idToken, refreshToken, expiresIn string) {
	p.idToken = idToken
	if refreshToken != "" {
		p.refreshToken = refreshToken
	}
	if exp, ok := tokenExpiry(idToken); ok {
		p.expiresAt = exp
		return
	}
	seconds, err := strconv.Atoi(expiresIn)
	if err != nil || seconds <= 0 {
		seconds = 3600
	}
	p.expiresAt = p.now().Add(time.Duration(seconds) * time.Second)
}

// tokenExpiry reads exp without verifying the signature; the server does that.
func tokenExpiry(idToken string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(idToken, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func (p *FirebaseTokenProvider) send(req *http.Request, out interface{}) error {
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var ie identityError
		_ = json.NewDecoder(resp.Body).Decode(&ie)
		message := ie.Error.Message
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Code: "AUTH_ERROR", Message: message}
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
