// README: Firebase ID-token verification; the verified caller identifies whose plan quota is charged.
package infra

import (
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// ErrTokenRevoked is returned when revocation checks are on and the caller's
// session was revoked after the token was minted.
var ErrTokenRevoked = errors.New("firebase: id token revoked")

// FirebaseOptions configures the verifier. ProjectID is required.
type FirebaseOptions struct {
	ProjectID       string
	CredentialsFile string // empty uses application-default credentials
	CheckRevoked    bool   // costs one extra Auth API call per request
}

// FirebaseToken is the caller identity the HTTP layer works with.
type FirebaseToken struct {
	UID            string
	Email          string
	EmailVerified  bool
	Name           string
	SignInProvider string // "password", "google.com", "anonymous", ...
	Claims         map[string]interface{}
}

// TokenVerifier turns a raw ID token into a caller identity.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*FirebaseToken, error)
}

type firebaseVerifier struct {
	client       *auth.Client
	checkRevoked bool
}

// NewFirebaseVerifier builds a TokenVerifier on the Firebase Admin SDK.
func NewFirebaseVerifier(ctx context.Context, opts FirebaseOptions) (TokenVerifier, error) {
	if opts.ProjectID == "" {
		return nil, errors.New("firebase: project id is required")
	}
	var clientOpts []option.ClientOption
	if opts.CredentialsFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(opts.CredentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: opts.ProjectID}, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("firebase app for %s: %w", opts.ProjectID, err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth client: %w", err)
	}
	return &firebaseVerifier{client: client, checkRevoked: opts.CheckRevoked}, nil
}

func (v *firebaseVerifier) VerifyIDToken(ctx context.Context, idToken string) (*FirebaseToken, error) {
	verify := v.client.VerifyIDToken
	if v.checkRevoked {
		verify = v.client.VerifyIDTokenAndCheckRevoked
	}
	token, err := verify(ctx, idToken)
	if auth.IsIDTokenRevoked(err) {
		return nil, ErrTokenRevoked
	}
	if err != nil {
		return nil, err
	}
	caller := callerFromClaims(token.UID, token.Claims)
	if token.Firebase.SignInProvider != "" {
		caller.SignInProvider = token.Firebase.SignInProvider
	}
	return caller, nil
}

// callerFromClaims reads the profile claims Firebase puts in every ID token.
// Missing or mistyped claims stay zero.
func callerFromClaims(uid string, claims map[string]interface{}) *FirebaseToken {
	t := &FirebaseToken{UID: uid, Claims: claims}
	t.Email, _ = claims["email"].(string)
	t.EmailVerified, _ = claims["email_verified"].(bool)
	t.Name, _ = claims["name"].(string)
	if fb, ok := claims["firebase"].(map[string]interface{}); ok {
		t.SignInProvider, _ = fb["sign_in_provider"].(string)
	}
	return t
}
