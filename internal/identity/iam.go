// Package identity authenticates streaming users against AWS IAM.
//
// A user is considered authenticated when an IAM user with the given name
// exists and carries at least one policy whose name contains the access
// marker substring — directly attached, inline, or attached to any group
// the user belongs to. The access key supplied by the client is checked
// for presence only at the API layer; no cryptographic verification
// happens here.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/rs/zerolog/log"
)

// DefaultAccessMarker is the substring identifying policies that grant
// streaming access.
const DefaultAccessMarker = "StreamVault"

// ErrUserNotFound is returned when no IAM user exists for the username.
var ErrUserNotFound = errors.New("user not found")

// ErrAccessDenied is returned when the user exists but no attached, inline,
// or group policy carries the access marker.
var ErrAccessDenied = errors.New("user has no streaming access policy")

// IAMAPI is the subset of the IAM client used by the Authenticator.
type IAMAPI interface {
	GetUser(ctx context.Context, params *iam.GetUserInput, optFns ...func(*iam.Options)) (*iam.GetUserOutput, error)
	ListAttachedUserPolicies(ctx context.Context, params *iam.ListAttachedUserPoliciesInput, optFns ...func(*iam.Options)) (*iam.ListAttachedUserPoliciesOutput, error)
	ListUserPolicies(ctx context.Context, params *iam.ListUserPoliciesInput, optFns ...func(*iam.Options)) (*iam.ListUserPoliciesOutput, error)
	ListGroupsForUser(ctx context.Context, params *iam.ListGroupsForUserInput, optFns ...func(*iam.Options)) (*iam.ListGroupsForUserOutput, error)
	ListAttachedGroupPolicies(ctx context.Context, params *iam.ListAttachedGroupPoliciesInput, optFns ...func(*iam.Options)) (*iam.ListAttachedGroupPoliciesOutput, error)
}

// Compile-time check that the real SDK client satisfies the interface.
var _ IAMAPI = (*iam.Client)(nil)

// User is an authenticated principal.
type User struct {
	Name string
	ID   string
}

// Authenticator resolves usernames against IAM and checks policy attachment
// for the access marker.
type Authenticator struct {
	client IAMAPI
	marker string
}

// NewAuthenticator creates an Authenticator using the given access marker
// substring. An empty marker falls back to DefaultAccessMarker.
func NewAuthenticator(client IAMAPI, marker string) *Authenticator {
	if marker == "" {
		marker = DefaultAccessMarker
	}
	return &Authenticator{
		client: client,
		marker: marker,
	}
}

// Authenticate looks up the user and scans for the access marker in policy
// names: attached user policies first, then inline policy names, then the
// attached policies of each group the user belongs to. The first match
// short-circuits the remaining checks.
//
// Returns ErrUserNotFound for an unknown username, ErrAccessDenied when the
// marker is absent everywhere, and a wrapped IAM error otherwise.
func (a *Authenticator) Authenticate(ctx context.Context, username string) (*User, error) {
	out, err := a.client.GetUser(ctx, &iam.GetUserInput{UserName: &username})
	if err != nil {
		var nse *iamtypes.NoSuchEntityException
		if errors.As(err, &nse) {
			log.Warn().Str("username", username).Msg("Authentication failed: unknown user")
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("GetUser %s: %w", username, err)
	}

	user := &User{Name: username}
	if out.User != nil && out.User.UserId != nil {
		user.ID = *out.User.UserId
	}

	ok, err := a.hasMarker(ctx, username)
	if err != nil {
		return nil, err
	}
	if !ok {
		log.Warn().Str("username", username).Str("marker", a.marker).Msg("Authentication failed: access marker not found on any policy")
		return nil, ErrAccessDenied
	}

	log.Info().Str("username", username).Str("userId", user.ID).Msg("User authenticated")
	return user, nil
}

// hasMarker checks attached, inline, and group policies in order.
func (a *Authenticator) hasMarker(ctx context.Context, username string) (bool, error) {
	attached, err := a.client.ListAttachedUserPolicies(ctx, &iam.ListAttachedUserPoliciesInput{UserName: &username})
	if err != nil {
		return false, fmt.Errorf("ListAttachedUserPolicies %s: %w", username, err)
	}
	for _, p := range attached.AttachedPolicies {
		if p.PolicyName != nil && strings.Contains(*p.PolicyName, a.marker) {
			log.Debug().Str("username", username).Str("policy", *p.PolicyName).Msg("Access marker found on attached policy")
			return true, nil
		}
	}

	inline, err := a.client.ListUserPolicies(ctx, &iam.ListUserPoliciesInput{UserName: &username})
	if err != nil {
		return false, fmt.Errorf("ListUserPolicies %s: %w", username, err)
	}
	for _, name := range inline.PolicyNames {
		if strings.Contains(name, a.marker) {
			log.Debug().Str("username", username).Str("policy", name).Msg("Access marker found on inline policy")
			return true, nil
		}
	}

	groups, err := a.client.ListGroupsForUser(ctx, &iam.ListGroupsForUserInput{UserName: &username})
	if err != nil {
		return false, fmt.Errorf("ListGroupsForUser %s: %w", username, err)
	}
	for _, g := range groups.Groups {
		if g.GroupName == nil {
			continue
		}
		groupPolicies, err := a.client.ListAttachedGroupPolicies(ctx, &iam.ListAttachedGroupPoliciesInput{GroupName: g.GroupName})
		if err != nil {
			return false, fmt.Errorf("ListAttachedGroupPolicies %s: %w", *g.GroupName, err)
		}
		for _, p := range groupPolicies.AttachedPolicies {
			if p.PolicyName != nil && strings.Contains(*p.PolicyName, a.marker) {
				log.Debug().Str("username", username).Str("group", *g.GroupName).Str("policy", *p.PolicyName).Msg("Access marker found on group policy")
				return true, nil
			}
		}
	}

	return false, nil
}
