// Package view maps session state to structured UI descriptions. Nothing
// here renders markup; a front end turns these values into elements.
package view

import (
	"github.com/Tokebay/shorty/internal/i18n"
	"github.com/Tokebay/shorty/internal/token"
	"golang.org/x/text/message"
)

type State int

const (
	Unauthenticated State = iota
	Member
	Admin
)

func (s State) String() string {
	switch s {
	case Member:
		return "member"
	case Admin:
		return "admin"
	default:
		return "unauthenticated"
	}
}

// Resolve derives the view state from a stored token. An empty token is
// unauthenticated; a token that does not decode still counts as a signed in
// member so the user can sign out of it.
func Resolve(raw string) State {
	if raw == "" {
		return Unauthenticated
	}
	claims, ok := token.Decode(raw)
	if ok && claims.IsAdmin() {
		return Admin
	}
	return Member
}

const (
	PathHome   = "/"
	PathSignIn = "/signin"
	PathSignUp = "/signup"
	PathStats  = "/stats"

	SignOutID = "logout-btn"
)

type ItemKind int

const (
	KindLink ItemKind = iota
	KindAction
)

// Item is one header affordance: a link to Href, or an action identified
// by ID.
type Item struct {
	Kind  ItemKind
	ID    string
	Label string
	Href  string
	Class string
}

type Nav struct {
	State State
	Items []Item
}

func Render(state State, p *message.Printer) Nav {
	signOut := Item{Kind: KindAction, ID: SignOutID, Label: p.Sprintf(i18n.SignOut), Class: "header-auth_link--r"}

	switch state {
	case Admin:
		return Nav{State: state, Items: []Item{
			{Kind: KindLink, ID: "stats-link", Label: p.Sprintf(i18n.Statistics), Href: PathStats, Class: "header-auth_link--l"},
			signOut,
		}}
	case Member:
		return Nav{State: state, Items: []Item{signOut}}
	default:
		return Nav{State: Unauthenticated, Items: []Item{
			{Kind: KindLink, ID: "signin-link", Label: p.Sprintf(i18n.SignIn), Href: PathSignIn, Class: "header-auth_link--l"},
			{Kind: KindLink, ID: "signup-link", Label: p.Sprintf(i18n.SignUp), Href: PathSignUp, Class: "header-auth_link--r"},
		}}
	}
}
