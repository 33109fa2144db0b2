// controllers/srv.go
package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"Gin_postgres_redis_booking_tool/app"
	"Gin_postgres_redis_booking_tool/booking"
	"Gin_postgres_redis_booking_tool/models"
	"Gin_postgres_redis_booking_tool/session"
	"Gin_postgres_redis_booking_tool/store"

	"github.com/go-webauthn/webauthn/webauthn"
	"github.com/google/uuid"
)

type Srv struct {
	WA        *webauthn.WebAuthn
	Store     store.Store
	Engine    *booking.Engine
	Sess      *session.Store
	AppSess   *session.AppSessionStore
	WebOrigin string
	Cfg       app.Config
}

func GetSrv(a *app.App) *Srv {
	return &Srv{
		WA:        a.WA,
		Store:     a.Store,
		Engine:    booking.New(a.Store),
		Sess:      session.NewStore(a.RDB, a.Config.SessionTTL),
		AppSess:   a.AppSessions(),
		WebOrigin: a.Config.WebOrigin,
		Cfg:       a.Config,
	}
}

// errStatus maps the typed outcomes of the core onto HTTP statuses. Nothing
// is swallowed: unknown errors stay 500.
func errStatus(err error) int {
	switch {
	case store.IsValidation(err),
		errors.Is(err, booking.ErrUnknownAction),
		errors.Is(err, booking.ErrUnknownEquipment),
		errors.Is(err, booking.ErrConfirmationMismatch):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, booking.ErrInvalidTransition),
		errors.Is(err, store.ErrStatusConflict),
		errors.Is(err, booking.ErrSetupRequired),
		errors.Is(err, booking.ErrSetupDone),
		errors.Is(err, store.ErrEmailTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *app.Ctx, err error) {
	c.JSON(errStatus(err), app.H{"error": err.Error()})
}

// actor returns the opaque identity recorded on decisions: the admin email
// when known, the user id otherwise.
func actor(c *app.Ctx) string {
	if v, ok := c.Get("email"); ok {
		if s, _ := v.(string); s != "" {
			return s
		}
	}
	v, _ := c.Get("userID")
	s, _ := v.(string)
	return s
}

// --- session helpers ---

func (s *Srv) setAppCookie(w http.ResponseWriter, sessionID string, maxAge time.Duration) {
	secure := strings.HasPrefix(s.WebOrigin, "https://")
	http.SetCookie(w, &http.Cookie{
		Name:     app.AppSessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
		MaxAge:   int(maxAge / time.Second),
	})
}

func (s *Srv) issueSession(ctx context.Context, w http.ResponseWriter, userID string) error {
	_ = s.Store.TouchUserLogin(ctx, userID) // best effort
	id := uuid.NewString()
	if err := s.AppSess.Create(ctx, id, userID); err != nil {
		return err
	}
	s.setAppCookie(w, id, s.Cfg.AppSessionTTL)
	return nil
}

// --- WebAuthn adapter: store user -> webauthn.User ---

type waUser struct {
	user  models.User
	creds []webauthn.Credential
}

func (u *waUser) WebAuthnID() []byte                         { id, _ := uuid.Parse(u.user.ID); return id[:] }
func (u *waUser) WebAuthnName() string                       { return u.user.Email }
func (u *waUser) WebAuthnDisplayName() string                { return u.user.DisplayName }
func (u *waUser) WebAuthnIcon() string                       { return "" }
func (u *waUser) WebAuthnCredentials() []webauthn.Credential { return u.creds }

func toWaCred(c models.Credential) webauthn.Credential {
	return webauthn.Credential{
		ID:              c.CredentialID,
		PublicKey:       c.PublicKey,
		AttestationType: c.AttestationType,
		Authenticator: webauthn.Authenticator{
			AAGUID:       c.AAGUID,
			SignCount:    c.SignCount,
			CloneWarning: c.CloneWarning,
		},
		Flags: webauthn.CredentialFlags{
			BackupEligible: c.BackupEligible,
			BackupState:    c.BackupState,
		},
	}
}

func (s *Srv) loadWAUser(ctx context.Context, u *models.User) *waUser {
	cs, _ := s.Store.LoadUserCredentials(ctx, u.ID)
	ws := make([]webauthn.Credential, 0, len(cs))
	for _, c := range cs {
		ws = append(ws, toWaCred(c))
	}
	return &waUser{user: *u, creds: ws}
}

func (s *Srv) loadWAUserByID(ctx context.Context, id string) (*waUser, error) {
	u, err := s.Store.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.loadWAUser(ctx, u), nil
}

func (s *Srv) storeCredential(ctx context.Context, userID string, cred *webauthn.Credential) error {
	return s.Store.AddCredential(ctx, &models.Credential{
		UserID:          userID,
		CredentialID:    cred.ID,
		PublicKey:       cred.PublicKey,
		AttestationType: cred.AttestationType,
		AAGUID:          cred.Authenticator.AAGUID,
		SignCount:       cred.Authenticator.SignCount,
		CloneWarning:    cred.Authenticator.CloneWarning,
		BackupEligible:  cred.Flags.BackupEligible,
		BackupState:     cred.Flags.BackupState,
	})
}

func (s *Srv) loadWAUserByEmail(ctx context.Context, email string) (*waUser, error) {
	u, err := s.Store.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.loadWAUser(ctx, u), nil
}
