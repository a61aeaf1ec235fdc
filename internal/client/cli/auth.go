package cli

import (
	"context"
	"fmt"

	"github.com/hhsksonu/kpcli/internal/client/models"
	"github.com/hhsksonu/kpcli/internal/client/nav"
	"github.com/hhsksonu/kpcli/internal/client/session"
	"github.com/hhsksonu/kpcli/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) login(ctx context.Context) {
	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "Input error:", err)
		return
	}

	password, err := getPassword("Password", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "Input error:", err)
		return
	}
	defer common.WipeByteArray(password)

	res := a.session.Login(ctx, session.Credentials{
		Username: username,
		Password: string(password),
	})
	if !res.OK {
		fmt.Fprintln(a.out, res.Message)
		return
	}

	user := a.session.User()
	fmt.Fprintf(a.out, "Logged in as %s (%s)\n", user.Username, user.Role)
}

func (a *App) register(ctx context.Context) {
	reg := session.Registration{}

	var err error
	if reg.Username, err = getSimpleText(a.reader, "Username", a.out); err != nil {
		fmt.Fprintln(a.out, "Input error:", err)
		return
	}
	if reg.Email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
		fmt.Fprintln(a.out, "Input error:", err)
		return
	}
	if reg.FirstName, err = getSimpleText(a.reader, "First name", a.out); err != nil {
		fmt.Fprintln(a.out, "Input error:", err)
		return
	}
	if reg.LastName, err = getSimpleText(a.reader, "Last name", a.out); err != nil {
		fmt.Fprintln(a.out, "Input error:", err)
		return
	}

	password, err := getPassword("Password", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "Input error:", err)
		return
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword("Confirm password", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "Input error:", err)
		return
	}
	defer common.WipeByteArray(confirm)

	reg.Password = string(password)
	reg.PasswordConfirm = string(confirm)

	res := a.session.Register(ctx, reg)
	if !res.OK {
		fmt.Fprintln(a.out, res.Message)
		return
	}

	user := a.session.User()
	fmt.Fprintf(a.out, "Account created. Logged in as %s (%s)\n", user.Username, user.Role)
}

func (a *App) logout(ctx context.Context) {
	a.session.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out.")
}

func (a *App) whoami(ctx context.Context) {
	user := a.session.User()
	if user == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return
	}
	fmt.Fprintf(a.out, "%s (%s) role=%s\n", user.Username, user.Email, user.Role)
	if exp, err := a.session.SessionExpiry(ctx); err == nil {
		fmt.Fprintf(a.out, "access token valid until %s\n", exp.Local().Format("15:04:05"))
	}
}

// profile fetches the fresh profile from the server and refreshes the
// cached snapshot.
func (a *App) profile(ctx context.Context) {
	user, err := a.api.Profile(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Fetching profile failed:", messageFor(err))
		return
	}

	fmt.Fprintf(a.out, "Username:      %s\n", user.Username)
	fmt.Fprintf(a.out, "Name:          %s\n", user.FullName())
	fmt.Fprintf(a.out, "Email:         %s\n", user.Email)
	fmt.Fprintf(a.out, "Role:          %s\n", user.Role)
	fmt.Fprintf(a.out, "Queries today: %d\n", user.DailyQueryCount)
	fmt.Fprintf(a.out, "Tokens used:   %d\n", user.TotalTokensUsed)
}

// updateProfile edits the mutable profile fields. Empty answers keep the
// current value.
func (a *App) updateProfile(ctx context.Context) {
	user := a.session.User()
	if user == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return
	}

	patch := models.UserPatch{}

	if v, err := getSimpleText(a.reader, fmt.Sprintf("Email [%s]", user.Email), a.out); err == nil && v != "" {
		patch.Email = &v
	}
	if v, err := getSimpleText(a.reader, fmt.Sprintf("First name [%s]", user.FirstName), a.out); err == nil && v != "" {
		patch.FirstName = &v
	}
	if v, err := getSimpleText(a.reader, fmt.Sprintf("Last name [%s]", user.LastName), a.out); err == nil && v != "" {
		patch.LastName = &v
	}

	if patch.Email == nil && patch.FirstName == nil && patch.LastName == nil {
		fmt.Fprintln(a.out, "Nothing to change.")
		return
	}

	if _, err := a.api.UpdateProfile(ctx, patch); err != nil {
		fmt.Fprintln(a.out, "Update failed:", messageFor(err))
		return
	}
	if err := a.session.UpdateUser(ctx, patch); err != nil {
		fmt.Fprintln(a.out, "Update failed:", err)
		return
	}

	fmt.Fprintln(a.out, "Profile updated.")
}

func (a *App) changePassword(ctx context.Context) {
	oldPw, err := getPassword("Current password", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "Input error:", err)
		return
	}
	defer common.WipeByteArray(oldPw)

	newPw, err := getPassword("New password", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "Input error:", err)
		return
	}
	defer common.WipeByteArray(newPw)

	confirm, err := getPassword("Confirm new password", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "Input error:", err)
		return
	}
	defer common.WipeByteArray(confirm)

	if string(newPw) != string(confirm) {
		fmt.Fprintln(a.out, "Passwords do not match")
		return
	}

	if err := a.api.ChangePassword(ctx, string(oldPw), string(newPw), string(confirm)); err != nil {
		fmt.Fprintln(a.out, "Changing password failed:", messageFor(err))
		return
	}
	fmt.Fprintln(a.out, "Password changed.")
}

// menu prints the navigation entries the current role may see.
func (a *App) menu() {
	user := a.session.User()
	if user == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return
	}
	for _, item := range nav.Visible(nav.Items, user.Role) {
		fmt.Fprintf(a.out, "%-18s %s\n", item.Name, item.Path)
	}
}
