package router

import (
	"sort"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookswap/internal/core/auth"
	"bookswap/internal/core/config"
	"bookswap/internal/service"
)

// Deps is handed to every mounted feature module.
type Deps struct {
	Log *zap.Logger
	Cfg *config.Config
	JWT *auth.JWTer

	Users    *service.UserService
	Books    *service.BookService
	Listings *service.ListingService
	Ratings  *service.RatingService
	Swaps    *service.SwapService
	Storage  *service.StorageService
}

// Feature modules register themselves in init(); public routes mount on the
// open group, everything else on the authenticated one.
type APIModule interface {
	MountAPI(public, authed *gin.RouterGroup, d *Deps)
}
type AdminModule interface {
	MountAdmin(admin *gin.RouterGroup, d *Deps)
}

// Implement to control mount order (lower mounts first, default 100).
type prioritizer interface{ Priority() int }

var (
	mu        sync.RWMutex
	apiMods   []APIModule
	adminMods []AdminModule
)

func Register(mod any) {
	mu.Lock()
	defer mu.Unlock()
	if m, ok := mod.(APIModule); ok {
		apiMods = append(apiMods, m)
	}
	if m, ok := mod.(AdminModule); ok {
		adminMods = append(adminMods, m)
	}
}

func MountAllAPI(public, authed *gin.RouterGroup, d *Deps) {
	mu.RLock()
	mods := append([]APIModule(nil), apiMods...)
	mu.RUnlock()

	sort.SliceStable(mods, func(i, j int) bool {
		return priorityOf(mods[i]) < priorityOf(mods[j])
	})
	for _, m := range mods {
		m.MountAPI(public, authed, d)
	}
}

func MountAllAdmin(admin *gin.RouterGroup, d *Deps) {
	mu.RLock()
	mods := append([]AdminModule(nil), adminMods...)
	mu.RUnlock()

	sort.SliceStable(mods, func(i, j int) bool {
		return priorityOf(mods[i]) < priorityOf(mods[j])
	})
	for _, m := range mods {
		m.MountAdmin(admin, d)
	}
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
