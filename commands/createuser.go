// Copyright (c) 2025 malek5552.
// Licensed under the MIT License. See LICENSE.

package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/malek5552/ramadan-games/auth"
	"github.com/malek5552/ramadan-games/cliparse"
	"github.com/malek5552/ramadan-games/lock"
	"github.com/malek5552/ramadan-games/models"
	"github.com/malek5552/ramadan-games/store"
)

var ErrPasswordMismatch = errors.New("passwords do not match")

// CreateUser handles the create-user subcommand
func CreateUser(args []string) {
	cfg, err := cliparse.ParseCreateUserFlags(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		fmt.Fprintf(os.Stderr, "Usage: ramadan-games create-user [-username NAME] [-role admin|user] [-overwrite] [-t json|sqlite|postgres] [-data DIR] [-d URL]\n")
		os.Exit(2)
	}

	p := newPrompter(os.Stdin, os.Stdout, int(os.Stdin.Fd()))

	username := cfg.Username
	if username == "" {
		username, err = p.line("Enter username: ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading username: %v\n", err)
			os.Exit(1)
		}
	}

	password, err := p.newPassword()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	user, created, err := ProvisionUser(ctx, st, cfg, username, password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, auth.ErrUsernameTaken) {
			fmt.Fprintf(os.Stderr, "Use -overwrite to reset the password of an existing user\n")
		}
		os.Exit(1)
	}

	action := "Updated"
	if created {
		action = "Created"
	}
	fmt.Printf("%s %s account %q (id %s)\n", action, user.Role, user.Username, user.ID)
}

// ProvisionUser creates or, with cfg.Overwrite, resets the account.
func ProvisionUser(ctx context.Context, users auth.UserStore, cfg cliparse.CreateUserConfig, username, password string) (models.User, bool, error) {
	accounts := auth.NewAccounts(users, lock.NewLocal())
	return accounts.Provision(ctx, username, password, cfg.Role, cfg.Overwrite)
}

// prompter reads answers from a terminal with echo off for passwords, or
// line by line from a pipe.
type prompter struct {
	in       *bufio.Reader
	out      io.Writer
	fd       int
	terminal bool
}

func newPrompter(in io.Reader, out io.Writer, fd int) *prompter {
	return &prompter{
		in:       bufio.NewReader(in),
		out:      out,
		fd:       fd,
		terminal: term.IsTerminal(fd),
	}
}

func (p *prompter) line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	s, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && s != "") {
		return "", err
	}
	return strings.TrimRight(s, "\r\n"), nil
}

func (p *prompter) secret(prompt string) (string, error) {
	if !p.terminal {
		return p.line(prompt)
	}

	fmt.Fprint(p.out, prompt)
	b, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// newPassword asks twice and requires both answers to match
func (p *prompter) newPassword() (string, error) {
	password, err := p.secret("Enter password:   ")
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if password == "" {
		return "", errors.New("password cannot be empty")
	}

	confirm, err := p.secret("Confirm password: ")
	if err != nil {
		return "", fmt.Errorf("failed to read password confirmation: %w", err)
	}
	if password != confirm {
		return "", ErrPasswordMismatch
	}
	return password, nil
}
