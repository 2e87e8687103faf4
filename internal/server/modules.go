package server

import (
	"github.com/nfrund/profiledash/internal/module"
	"github.com/nfrund/profiledash/internal/modules/profile"
)

// AppModules is the central registry of all application modules. Each one is
// booted under /app/<name> behind the session check.
func AppModules() []module.Module {
	return []module.Module{
		profile.New(profile.Dependencies{}),
	}
}
