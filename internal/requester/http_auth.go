package requester

import (
	"fmt"
	"net/http"

	"github.com/brizzai/mcp-sync-console/internal/config"
)

// AuthManager handles request authentication
type AuthManager interface {
	ApplyAuth(req *http.Request) error
}

// HTTPAuthManager applies the credentials from the endpoint config
type HTTPAuthManager struct {
	authType   config.AuthType
	authConfig map[string]string
}

// NewHTTPAuthManager creates a new HTTPAuthManager
func NewHTTPAuthManager(endpointConfig *config.EndpointConfig) *HTTPAuthManager {
	return &HTTPAuthManager{
		authType:   endpointConfig.AuthType,
		authConfig: endpointConfig.AuthConfig,
	}
}

// ApplyAuth adds authentication to the request
func (a *HTTPAuthManager) ApplyAuth(req *http.Request) error {
	switch a.authType {
	case config.AuthTypeNone, "":
		return nil
	case config.AuthTypeBasic:
		username := a.authConfig["username"]
		if username == "" {
			return fmt.Errorf("basic auth requires endpoint.auth_config.username")
		}
		req.SetBasicAuth(username, a.authConfig["password"])
	case config.AuthTypeBearer:
		token := a.authConfig["token"]
		if token == "" {
			return fmt.Errorf("bearer auth requires endpoint.auth_config.token")
		}
		req.Header.Set("Authorization", "Bearer "+token)
	case config.AuthTypeAPIKey:
		key := a.authConfig["key"]
		if key == "" {
			return fmt.Errorf("api_key auth requires endpoint.auth_config.key")
		}
		header := a.authConfig["header"]
		if header == "" {
			header = "X-API-Key"
		}
		req.Header.Set(header, key)
	default:
		return fmt.Errorf("unsupported auth type: %s", a.authType)
	}
	return nil
}
