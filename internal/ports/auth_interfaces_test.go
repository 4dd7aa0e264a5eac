package ports_test

import (
	"testing"

	"github.com/3issane/PFETRACKCODE212/internal/adapters/filestore"
	"github.com/3issane/PFETRACKCODE212/internal/adapters/memstore"
	redisstore "github.com/3issane/PFETRACKCODE212/internal/adapters/redis"
	"github.com/3issane/PFETRACKCODE212/internal/gateway"
	"github.com/3issane/PFETRACKCODE212/internal/mocks"
	"github.com/3issane/PFETRACKCODE212/internal/pfeapi"
	"github.com/3issane/PFETRACKCODE212/internal/ports"
	"github.com/3issane/PFETRACKCODE212/internal/service"
)

// This test only verifies that adapters and mocks conform to the ports at compile time.
func TestImplementationsSatisfyPorts(t *testing.T) {
	t.Helper()

	var _ ports.CredentialStore = (*filestore.Store)(nil)
	var _ ports.CredentialStore = (*memstore.Store)(nil)
	var _ ports.CredentialStore = (*redisstore.CredentialStore)(nil)
	var _ ports.CredentialStore = (*mocks.MockCredentialStore)(nil)
	var _ ports.TokenReader = gateway.TokenFunc(nil)

	var _ ports.AuthAPI = (*pfeapi.AuthClient)(nil)
	var _ ports.AuthAPI = (*mocks.MockAuthAPI)(nil)

	var _ ports.SessionReader = (*service.SessionManager)(nil)
	var _ ports.ResponseObserver = (*service.SessionManager)(nil)
}
