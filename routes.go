package accounts

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/KurtVarcoe/accounts-api/auth"
)

// NewRouter wires the user-account routes. httprouter refuses to register
// the static path /users/me next to the wildcard /users/:id/avatar, so the
// profile route is registered as /users/:id and accepts only "me".
func NewRouter(svc Service, tokens *auth.TokenService) http.Handler {
	guard := func(h http.Handler) http.Handler {
		return RequireAuth(h, svc, tokens)
	}

	router := httprouter.New()
	router.Handler(http.MethodPost, "/users", RegisterUserHandler(svc))
	router.Handler(http.MethodPost, "/users/login", LoginHandler(svc))
	router.Handler(http.MethodPost, "/users/logout", guard(LogoutHandler(svc)))
	router.Handler(http.MethodPost, "/users/logoutAll", guard(LogoutAllHandler(svc)))
	router.Handler(http.MethodGet, "/users/:id", meOnly(guard(ProfileHandler())))
	router.Handler(http.MethodPatch, "/users/me", guard(UpdateProfileHandler(svc)))
	router.Handler(http.MethodDelete, "/users/me", guard(DeleteAccountHandler(svc)))
	router.Handler(http.MethodPost, "/users/me/avatar", guard(UploadAvatarHandler(svc)))
	router.Handler(http.MethodDelete, "/users/me/avatar", guard(DeleteAvatarHandler(svc)))
	router.Handler(http.MethodGet, "/users/:id/avatar", AvatarFetchHandler(svc))

	return router
}

func meOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if httprouter.ParamsFromContext(r.Context()).ByName("id") != "me" {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
