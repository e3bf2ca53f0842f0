package restapi

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"cosmic_gateway/internal/infrastructure/configloader"
	"cosmic_gateway/pkg/metrics"
)

// Headers regenerated from the actual target instead of forwarded.
var strippedRequestHeaders = map[string]struct{}{
	"host":           {},
	"connection":     {},
	"content-length": {},
}

// Headers dropped from the upstream response to avoid double-decoding and
// chunking mismatches between the two hops.
var strippedResponseHeaders = map[string]struct{}{
	"content-encoding":  {},
	"transfer-encoding": {},
}

// ProxyHandler forwards arbitrary HTTP(S) requests server-side so an
// HTTPS-served frontend can reach plaintext-HTTP RPC and API endpoints that
// browsers would block as mixed content.
type ProxyHandler struct {
	client         *fasthttp.Client
	forwardTimeout time.Duration
	allowedHosts   map[string]struct{}
	logger         *zap.Logger
}

// NewProxyHandler creates the proxy handler. When allowedHosts is empty every
// target is forwarded; the SSRF exposure of that default is the operator's
// call and is warned about at config load.
func NewProxyHandler(cfg configloader.ProxyConfig, logger *zap.Logger) *ProxyHandler {
	allowed := make(map[string]struct{}, len(cfg.AllowedHosts))
	for _, host := range cfg.AllowedHosts {
		allowed[strings.ToLower(host)] = struct{}{}
	}
	return &ProxyHandler{
		client:         &fasthttp.Client{},
		forwardTimeout: time.Duration(cfg.ForwardTimeoutMillis) * time.Millisecond,
		allowedHosts:   allowed,
		logger:         logger.Named("ProxyHandler"),
	}
}

// Handle serves GET|POST|PUT|DELETE|PATCH|OPTIONS /api/proxy?url=<target>.
func (h *ProxyHandler) Handle(c *gin.Context) {
	target := c.Query("url")
	if target == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL parameter is missing"})
		return
	}

	// Schemeless targets default to plain HTTP; that is the whole point of
	// the proxy.
	if !strings.Contains(target, "://") {
		target = "http://" + target
	}
	parsed, err := url.Parse(target)
	if err != nil || parsed.Host == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid URL format"})
		return
	}

	if len(h.allowedHosts) > 0 {
		if _, ok := h.allowedHosts[strings.ToLower(parsed.Hostname())]; !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "Target host is not allowed"})
			return
		}
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(parsed.String())
	req.Header.SetMethod(c.Request.Method)

	for name, values := range c.Request.Header {
		if _, stripped := strippedRequestHeaders[strings.ToLower(name)]; stripped {
			continue
		}
		for _, value := range values {
			req.Header.Add(name, value)
		}
	}
	req.Header.SetHost(parsed.Host)
	// Always fetch fresh from the target.
	req.Header.Set("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		// A read failure (already-consumed or empty stream) means "no body".
		if body, readErr := io.ReadAll(c.Request.Body); readErr == nil && len(body) > 0 {
			req.SetBody(body)
		}
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if err := h.client.DoTimeout(req, resp, h.forwardTimeout); err != nil {
		metrics.ProxyFailures.Inc()
		h.logger.Error("Proxy forward failed", zap.String("target", parsed.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Proxy request failed",
			"message": err.Error(),
			"status":  http.StatusInternalServerError,
		})
		return
	}

	statusCode := resp.StatusCode()
	metrics.ProxyForwards.WithLabelValues(statusClass(statusCode)).Inc()

	resp.Header.VisitAll(func(key, value []byte) {
		if _, stripped := strippedResponseHeaders[strings.ToLower(string(key))]; stripped {
			return
		}
		c.Writer.Header().Add(string(key), string(value))
	})
	header := c.Writer.Header()
	header.Set("Access-Control-Allow-Origin", "*")
	header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, PATCH, OPTIONS")
	header.Set("Access-Control-Allow-Headers", "*")

	c.Status(statusCode)
	if _, err := c.Writer.Write(resp.Body()); err != nil {
		h.logger.Warn("Failed to write proxied response body", zap.Error(err))
	}
}

func statusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
