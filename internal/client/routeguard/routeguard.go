// Package routeguard decides which screen a navigation attempt actually
// lands on, given the current session. Resolution is a pure function and is
// re-evaluated on every navigation; a session invalidated mid-run is caught
// on the next attempt, not immediately.
package routeguard

import "github.com/visualcaption/vcap/internal/client/session"

// Screen identifies a navigable view of the client.
type Screen string

const (
	ScreenSignIn    Screen = "signin"
	ScreenSignUp    Screen = "signup"
	ScreenVerifyOTP Screen = "verify-otp"
	ScreenRegister  Screen = "register"
	ScreenHome      Screen = "home"

	ScreenAdminDashboard Screen = "admin"
	ScreenAdminUsers     Screen = "admin/users"
	ScreenAdminCaptions  Screen = "admin/captions"
	ScreenAdminFeedback  Screen = "admin/feedback"
)

// Role is the coarse authorization level derived from a session snapshot.
type Role int

const (
	RoleAnonymous Role = iota
	RoleUser
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAdmin:
		return "admin"
	default:
		return "anonymous"
	}
}

// RoleOf maps a session snapshot to its role.
func RoleOf(st session.State) Role {
	switch {
	case !st.LoggedIn:
		return RoleAnonymous
	case st.Admin:
		return RoleAdmin
	default:
		return RoleUser
	}
}

func isAuthScreen(s Screen) bool {
	switch s {
	case ScreenSignIn, ScreenSignUp, ScreenVerifyOTP, ScreenRegister:
		return true
	}
	return false
}

func isAdminScreen(s Screen) bool {
	switch s {
	case ScreenAdminDashboard, ScreenAdminUsers, ScreenAdminCaptions, ScreenAdminFeedback:
		return true
	}
	return false
}

func isKnown(s Screen) bool {
	return s == ScreenHome || isAuthScreen(s) || isAdminScreen(s)
}

// Resolve returns the screen the navigation ends on: target itself when
// allowed, or the redirect destination otherwise.
//
//   - anonymous may reach the auth screens and home; admin screens redirect
//     to sign-in.
//   - user is sent from auth and admin screens back home.
//   - admin is sent from home and auth screens to the admin dashboard.
//   - unknown targets land on home (or the dashboard, for admins).
func Resolve(st session.State, target Screen) Screen {
	if !isKnown(target) {
		target = ScreenHome
	}

	switch RoleOf(st) {
	case RoleAnonymous:
		if isAdminScreen(target) {
			return ScreenSignIn
		}
		return target

	case RoleUser:
		if isAuthScreen(target) || isAdminScreen(target) {
			return ScreenHome
		}
		return target

	default: // RoleAdmin
		if target == ScreenHome || isAuthScreen(target) {
			return ScreenAdminDashboard
		}
		return target
	}
}
