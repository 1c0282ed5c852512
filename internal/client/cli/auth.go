package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/visualcaption/vcap/internal/client/bus"
	"github.com/visualcaption/vcap/internal/client/routeguard"
	"github.com/visualcaption/vcap/internal/client/validate"
	"github.com/visualcaption/vcap/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// logoutDelay keeps the signing-out indicator visible long enough to be
// seen. Purely cosmetic.
var logoutDelay = 800 * time.Millisecond

// sleepFn is a test seam for time.Sleep.
var sleepFn = time.Sleep

// Register walks the sign-up flow: email, OTP verification, then password.
// On success the user is sent to the sign-in screen.
func (a *App) Register(ctx context.Context) error {
	if !a.navigate(routeguard.ScreenSignUp) {
		return nil
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	if err := validate.Email(email); err != nil {
		printlnFn(err.Error())
		return err
	}

	if err := a.api.SendOTP(ctx, email); err != nil {
		printlnFn("Could not send verification code:", err.Error())
		return err
	}
	printlnFn("Verification code sent to", email)

	a.navigate(routeguard.ScreenVerifyOTP)
	otp, err := getSimpleText(a.reader, "Enter verification code", os.Stdout)
	if err != nil {
		return err
	}
	if err := validate.OTP(otp); err != nil {
		printlnFn(err.Error())
		return err
	}
	if err := a.api.VerifyOTP(ctx, email, otp); err != nil {
		printlnFn("Verification failed:", err.Error())
		return err
	}

	a.navigate(routeguard.ScreenRegister)
	password, err := getPassword(a.reader, "Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	if err := validate.Password(password); err != nil {
		printlnFn(err.Error())
		return err
	}

	confirmation, err := getPassword(a.reader, "Confirm password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirmation)
	if err := validate.PasswordsMatch(password, confirmation); err != nil {
		printlnFn(err.Error())
		return err
	}

	if err := a.api.Register(ctx, email, string(password)); err != nil {
		printlnFn("Registration failed:", err.Error())
		return err
	}

	printlnFn("Account created, please sign in.")
	a.navigate(routeguard.ScreenSignIn)
	return nil
}

// Login prompts for credentials, exchanges them for a bearer credential and
// persists the session. A "next panel" hint left behind by an earlier
// anonymous action (e.g. trying to leave feedback) is honored right after.
func (a *App) Login(ctx context.Context) error {
	if !a.navigate(routeguard.ScreenSignIn) {
		return nil
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	if err := validate.Email(email); err != nil {
		printlnFn(err.Error())
		return err
	}

	password, err := getPassword(a.reader, "Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	if err := validate.Password(password); err != nil {
		printlnFn(err.Error())
		return err
	}

	credential, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		printlnFn("Sign-in failed:", err.Error())
		return err
	}

	if err := a.store.SaveSession(ctx, credential, email); err != nil {
		return fmt.Errorf("persisting session: %w", err)
	}
	a.session.Login(ctx)
	printlnFn("Signed in as", email)

	a.navigate(routeguard.ScreenHome)

	panel, err := a.store.TakeNextPanel(ctx)
	if err != nil {
		a.log.Warn(ctx, "reading next panel hint", "error", err)
		return nil
	}
	if panel == panelFeedback {
		a.bus.Publish(bus.ShowFeedbackPanel{Visible: true})
	}
	if a.showFeedback {
		a.showFeedback = false
		return a.Feedback(ctx)
	}
	return nil
}

// Logout shows a brief signing-out indicator, tells the backend, clears the
// local session and lands on the sign-in screen. Backend failures do not
// keep the user signed in locally.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		return nil
	}

	printlnFn("Signing out...")
	sleepFn(logoutDelay)

	if err := a.api.Logout(ctx); err != nil {
		a.log.Warn(ctx, "backend logout failed", "error", err)
	}
	a.session.Logout(ctx)
	a.navigate(routeguard.ScreenSignIn)
	printlnFn("Signed out.")
	return nil
}
