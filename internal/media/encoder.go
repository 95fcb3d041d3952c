// Package media turns image bytes into text that can be stored in a recipe's
// image field: a base64 data URL, or the URL of an uploaded object.
package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"syscall"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/pageza/cookbook/backend/internal/apperr"
)

// DefaultMaxBytes caps the size of an image read by the Encoder.
const DefaultMaxBytes = 10 << 20

// ErrBlockedAddress is returned when a fetch would reach a loopback, private,
// link-local or otherwise non-public address.
var ErrBlockedAddress = errors.New("address not allowed")

var imageExtensions = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|webp|svg)(\?.*)?$`)

// IsValidImageURL is a loose check that url looks like an image address.
func IsValidImageURL(rawURL string) bool {
	return imageExtensions.MatchString(rawURL) || strings.Contains(rawURL, "unsplash") || strings.Contains(rawURL, "images")
}

// Encoder produces data URLs of the form data:<mime>;base64,<payload>.
type Encoder struct {
	client   *http.Client
	maxBytes int64
}

// NewEncoder creates an Encoder. A nil client gets PublicClient.
func NewEncoder(client *http.Client) *Encoder {
	if client == nil {
		client = PublicClient(15 * time.Second)
	}
	return &Encoder{client: client, maxBytes: DefaultMaxBytes}
}

// PublicClient returns an HTTP client that only dials public unicast
// addresses. The check runs on the resolved address of every connection,
// redirects included.
func PublicClient(timeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout: 10 * time.Second,
		Control: publicOnly,
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil
	transport.DialContext = dialer.DialContext
	return &http.Client{Timeout: timeout, Transport: transport}
}

func publicOnly(_, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	ip := net.ParseIP(host)
	if ip == nil || !isPublic(ip) {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, host)
	}
	return nil
}

func isPublic(ip net.IP) bool {
	return ip.IsGlobalUnicast() &&
		!ip.IsPrivate() &&
		!ip.IsLoopback() &&
		!ip.IsLinkLocalUnicast()
}

// WithMaxBytes returns a copy of e with a different size cap.
func (e *Encoder) WithMaxBytes(n int64) *Encoder {
	c := *e
	c.maxBytes = n
	return &c
}

// EncodeBytes encodes data, detecting the MIME type from its content.
func (e *Encoder) EncodeBytes(data []byte) (string, error) {
	if len(data) == 0 {
		return "", apperr.MediaError("bytes", fmt.Errorf("empty image"))
	}
	if int64(len(data)) > e.maxBytes {
		return "", apperr.MediaError("bytes", fmt.Errorf("image exceeds %d bytes", e.maxBytes))
	}
	return DataURL(DetectMIME(data), data), nil
}

// EncodeReader reads r to the end and encodes its content.
func (e *Encoder) EncodeReader(r io.Reader) (string, error) {
	data, err := e.readAll("reader", r)
	if err != nil {
		return "", err
	}
	return e.EncodeBytes(data)
}

// EncodeFile encodes a local file.
func (e *Encoder) EncodeFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", apperr.MediaError(path, err)
	}
	defer f.Close()

	data, err := e.readAll(path, f)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", apperr.MediaError(path, fmt.Errorf("empty image"))
	}
	return DataURL(DetectMIME(data), data), nil
}

// Fetch downloads an http or https url and returns the body.
func (e *Encoder) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, apperr.MediaError(rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, apperr.MediaError(rawURL, fmt.Errorf("unsupported scheme %q", u.Scheme))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, apperr.MediaError(rawURL, err)
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return nil, apperr.MediaError(rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperr.MediaError(rawURL, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	data, err := e.readAll(rawURL, resp.Body)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, apperr.MediaError(rawURL, fmt.Errorf("empty image"))
	}
	return data, nil
}

func (e *Encoder) readAll(source string, r io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(r, e.maxBytes+1))
	if err != nil {
		return nil, apperr.MediaError(source, err)
	}
	if n > e.maxBytes {
		return nil, apperr.MediaError(source, fmt.Errorf("image exceeds %d bytes", e.maxBytes))
	}
	return buf.Bytes(), nil
}

// DetectMIME returns the media type of data without parameters.
func DetectMIME(data []byte) string {
	mt, _, _ := strings.Cut(mimetype.Detect(data).String(), ";")
	return strings.TrimSpace(mt)
}

// DataURL formats data as a base64 data URL.
func DataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// IsDataURL reports whether s is already an embedded data URL.
func IsDataURL(s string) bool {
	return strings.HasPrefix(s, "data:")
}
