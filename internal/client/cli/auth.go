package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/campusevents/internal/client/session"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts the user for credentials and tries to authenticate.
// Rejected credentials and unreachable-server cases both surface as the
// result's error message; inspect the session state for the outcome.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	res := a.session.Login(ctx, email, password)
	if !res.Success {
		printlnFn("Login failed:", res.Error)
		return nil
	}

	printlnFn("Welcome,", a.session.State().User.FullName())
	return nil
}

// Register prompts for the account fields and attempts to create a new
// account. A successful registration also signs the user in.
func (a *App) Register(ctx context.Context) error {
	data := session.RegisterData{}

	var err error
	if data.FirstName, err = getSimpleText(a.reader, "Enter first name", os.Stdout); err != nil {
		return err
	}
	if data.LastName, err = getSimpleText(a.reader, "Enter last name", os.Stdout); err != nil {
		return err
	}
	if data.Email, err = getSimpleText(a.reader, "Enter email", os.Stdout); err != nil {
		return err
	}
	if data.Department, err = getSimpleText(a.reader, "Enter department (optional)", os.Stdout); err != nil {
		return err
	}
	if data.StudentID, err = getSimpleText(a.reader, "Enter student ID (optional)", os.Stdout); err != nil {
		return err
	}
	if data.Password, err = getPassword(os.Stdout); err != nil {
		return err
	}

	res := a.session.Register(ctx, data)
	if !res.Success {
		printlnFn("Registration failed:", res.Error)
		return nil
	}

	printlnFn("Success!")
	return nil
}

// Logout ends the session. The server call is best-effort; locally the
// session always ends.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	printlnFn("Logged out")
	return nil
}

// Whoami prints the current user's profile snapshot.
func (a *App) Whoami(ctx context.Context) error {
	st := a.session.State()
	if st.User == nil {
		printlnFn("Not logged in")
		return nil
	}
	u := st.User
	printlnFn(fmt.Sprintf("%s <%s> role=%s", u.FullName(), u.Email, u.Role))
	if u.Department != "" {
		printlnFn("Department:", u.Department)
	}
	if u.StudentID != "" {
		printlnFn("Student ID:", u.StudentID)
	}
	return nil
}
