package accounts

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
)

// userResponse is the only shape a User ever takes on the wire. The password
// hash, the session list and the raw avatar bytes stay out of it regardless
// of how the record is stored.
type userResponse struct {
	ID        ID        `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       int       `json:"age"`
	CreatedAt time.Time `json:"createdAt"`
}

type authResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

func newUserResponse(u *User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Age: u.Age, CreatedAt: u.CreatedAt}
}

func RegisterUserHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeRegisterUserRequest(r)
		w.Header().Set("Content-Type", "application/json")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		user, token, err := svc.RegisterNewUser(req)
		if err != nil {
			encodeError(err, w)
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(authResponse{User: newUserResponse(user), Token: token})
	})
}

func LoginHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeLoginRequest(r)
		w.Header().Set("Content-Type", "application/json")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		user, token, err := svc.LoginUser(req)
		if err != nil {
			encodeError(err, w)
			return
		}

		json.NewEncoder(w).Encode(authResponse{User: newUserResponse(user), Token: token})
	})
}

func LogoutHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := userFromContext(r.Context())
		token := tokenFromContext(r.Context())

		if err := svc.LogoutUser(user, token); err != nil {
			encodeError(err, w)
		}
	})
}

func LogoutAllHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := userFromContext(r.Context())

		if err := svc.LogoutAllSessions(user); err != nil {
			encodeError(err, w)
		}
	})
}

func ProfileHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := userFromContext(r.Context())

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(newUserResponse(user))
	})
}

func UpdateProfileHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fields, err := decodeUpdateProfileRequest(r)
		w.Header().Set("Content-Type", "application/json")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		user, err := svc.UpdateProfile(userFromContext(r.Context()), fields)
		if err != nil {
			encodeError(err, w)
			return
		}

		json.NewEncoder(w).Encode(newUserResponse(user))
	})
}

func DeleteAccountHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := svc.DeleteAccount(userFromContext(r.Context()))
		if err != nil {
			encodeError(err, w)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(newUserResponse(snapshot))
	})
}

func UploadAvatarHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		avatar, err := readAvatarUpload(r)
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			encodeError(err, w)
			return
		}

		if err := svc.SetAvatar(userFromContext(r.Context()), avatar); err != nil {
			encodeError(err, w)
		}
	})
}

func DeleteAvatarHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := svc.ClearAvatar(userFromContext(r.Context())); err != nil {
			encodeError(err, w)
		}
	})
}

// AvatarFetchHandler serves stored avatars publicly. A missing user and a
// user without an avatar both come back as a bare 404.
func AvatarFetchHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		avatar, err := svc.AvatarByID(ID(id))
		if err != nil {
			encodeError(err, w)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Write(avatar)
	})
}

// encodeError maps domain errors to the contractual status codes. Login
// failures and avatar-fetch misses deliberately carry no body.
func encodeError(err error, w http.ResponseWriter) {
	switch err {
	case ErrEmptyName, ErrInvalidEmail, ErrInvalidPassword, ErrInvalidAge,
		ErrExistingEmail, ErrInvalidUpdate,
		ErrAvatarTooLarge, ErrUnsupportedAvatar, ErrUndecodableAvatar:
		w.WriteHeader(http.StatusBadRequest)
	case ErrInvalidCredentials:
		w.WriteHeader(http.StatusBadRequest)
		return
	case ErrNotFound:
		w.WriteHeader(http.StatusNotFound)
		return
	default:
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": err.Error(),
	})
}

func decodeRegisterUserRequest(r *http.Request) (registerUserRequest, error) {
	req := registerUserRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return registerUserRequest{}, err
	}
	return req, nil
}

func decodeLoginRequest(r *http.Request) (loginRequest, error) {
	req := loginRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return loginRequest{}, err
	}
	return req, nil
}

// decodeUpdateProfileRequest keeps the body as a map so the service can
// reject unknown keys instead of silently dropping them.
func decodeUpdateProfileRequest(r *http.Request) (map[string]interface{}, error) {
	fields := map[string]interface{}{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		return nil, err
	}
	return fields, nil
}
