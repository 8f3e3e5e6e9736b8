package handler

import "github.com/datapulse/identity-api/internal/core/domain"

// principalView is the wire shape of an authenticated principal: the kind
// discriminator plus the kind-specific profile.
type principalView struct {
	Kind     domain.Kind `json:"kind"`
	Teammate any         `json:"teammate,omitempty"`
	User     any         `json:"user,omitempty"`
}

func viewPrincipal(p domain.Principal) principalView {
	view := principalView{Kind: p.Kind()}
	switch v := p.(type) {
	case *domain.Teammate:
		view.Teammate = v
	case *domain.ClientUser:
		view.User = v
	}
	return view
}
