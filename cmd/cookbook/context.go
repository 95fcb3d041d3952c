package main

import (
	"os"
	"strings"
	"sync"

	"github.com/pageza/cookbook/backend/internal/auth"
	"github.com/pageza/cookbook/backend/internal/client"
)

type commandContext struct {
	serverFlag  *string
	sessionFlag *string

	once     sync.Once
	client   *client.Client
	session  *auth.Session
	file     *auth.TokenFile
	setupErr error
	saveErr  error
}

func newCommandContext(serverFlag, sessionFlag *string) *commandContext {
	return &commandContext{serverFlag: serverFlag, sessionFlag: sessionFlag}
}

func defaultServer() string {
	if v := strings.TrimSpace(os.Getenv("COOKBOOK_API_URL")); v != "" {
		return v
	}
	return client.DefaultBaseURL
}

// ensureSession builds the API client and restores the saved session.
func (c *commandContext) ensureSession() (*auth.Session, *client.Client, error) {
	c.once.Do(func() {
		server := strings.TrimSpace(*c.serverFlag)
		if server == "" {
			server = defaultServer()
		}
		c.client = client.New(server, nil)

		if path := strings.TrimSpace(*c.sessionFlag); path != "" {
			c.file = &auth.TokenFile{Path: path}
		} else {
			c.file, c.setupErr = auth.DefaultTokenFile()
			if c.setupErr != nil {
				return
			}
		}

		snap, err := c.file.Load()
		if err != nil {
			c.setupErr = err
			return
		}
		c.session = auth.NewSession(c.client)
		c.session.Restore(snap)
		c.client.Token = c.session.Token

		// Later sign-ins and sign-outs are written back to the token file.
		restored := true
		c.session.Subscribe(func(s auth.Snapshot) {
			if restored {
				restored = false
				return
			}
			c.saveErr = c.file.Save(s)
		})
	})
	return c.session, c.client, c.setupErr
}

// saved returns the error of the last session write, if any.
func (c *commandContext) saved() error {
	return c.saveErr
}
