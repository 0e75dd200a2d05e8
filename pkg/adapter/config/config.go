// Copyright (c) 2025-2026 DriverMind Ltda.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config loads and validates the service configuration
// settings from a YAML file. Secrets never live in the file; they are
// looked up from the environment while validating, so the file can be
// committed and the secrets can be injected per deployment (a .env
// file is honored by the command layer).
package config

import (
	"context"
	"fmt"
	"net/url"
	"os"

	"github.com/drivermind/dmweb/pkg/adapter/db/postgres"
	"github.com/drivermind/dmweb/pkg/adapter/db/postgres/schemarp"
	"github.com/drivermind/dmweb/pkg/adapter/hash/scram"
	"github.com/drivermind/dmweb/pkg/adapter/identity"
	"github.com/drivermind/dmweb/pkg/adapter/payment"
	"github.com/drivermind/dmweb/pkg/adapter/restful/gin"
	"github.com/drivermind/dmweb/pkg/core/repo"
	scrami "github.com/drivermind/dmweb/pkg/core/scram"
	"github.com/drivermind/dmweb/pkg/core/usecase/dayuc"
	"github.com/drivermind/dmweb/pkg/core/usecase/garageuc"
	"github.com/drivermind/dmweb/pkg/core/usecase/historyuc"
	"github.com/drivermind/dmweb/pkg/core/usecase/ledgeruc"
	"github.com/drivermind/dmweb/pkg/core/usecase/profileuc"
	"gopkg.in/yaml.v3"
)

// Environment variable names for the secrets which must not appear in
// the configuration file.
const (
	EnvDBPassword      = "DMWEB_DB_PASSWORD"
	EnvDBAdminPassword = "DMWEB_DB_ADMIN_PASSWORD"
	EnvIdentityKey     = "DMWEB_IDENTITY_KEY"
	EnvBillingKey      = "DMWEB_BILLING_KEY"
	EnvWebhookSecret   = "DMWEB_WEBHOOK_SECRET"
)

// Config contains all settings which are required by different parts
// of the project, such as adapters or use cases. It is preferred to
// implement Config with primitive fields or other structs which are
// defined locally, not models or structs which are defined in lower
// layers, so the configuration file format can be kept intact while
// other layers change freely.
type Config struct {
	Database Database // PostgreSQL database connection settings
	Gin      Gin      // Gin-Gonic instantiation settings
	Identity Identity // hosted identity service settings
	Billing  Billing  // hosted payment provider settings
}

// Load reads and unmarshals the YAML file at path into a Config
// instance. Extra items in the file will be ignored and missing items
// will take their default values. Thereafter, the loaded Config will
// be validated and normalized, picking up secrets from the
// environment.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating configs: %w", err)
	}
	return c, nil
}

// ValidateAndNormalize validates the configuration settings and
// replaces missing settings with their default values, reading the
// secret values from the environment.
func (c *Config) ValidateAndNormalize() error {
	if err := c.Database.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	c.Gin.validateAndNormalize()
	if err := c.Identity.validateAndNormalize(); err != nil {
		return fmt.Errorf("identity: %w", err)
	}
	if err := c.Billing.validateAndNormalize(); err != nil {
		return fmt.Errorf("billing: %w", err)
	}
	return nil
}

// ConnectionPool creates a database connection pool for the given
// role using the connection information which are kept in the `c`
// settings.
func (c *Config) ConnectionPool(
	ctx context.Context, r repo.Role,
) (repo.Pool, error) {
	p, err := c.Database.ConnectionPool(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("connecting as %q: %w", r, err)
	}
	return p, nil
}

// NewSchemaRepo instantiates a fresh Schema repository, using the
// hasher which matches the configured authentication method.
func (c *Config) NewSchemaRepo() repo.Schema {
	return c.Database.NewSchemaRepo()
}

// NewDayUseCase instantiates a work day lifecycle use case.
func (c *Config) NewDayUseCase(
	p repo.Pool, d repo.Workdays, l repo.Ledger,
) (*dayuc.UseCase, error) {
	return dayuc.New(p, d, l)
}

// NewLedgerUseCase instantiates an earnings and expenses use case.
func (c *Config) NewLedgerUseCase(
	p repo.Pool, d repo.Workdays, l repo.Ledger,
) (*ledgeruc.UseCase, error) {
	return ledgeruc.New(p, d, l)
}

// NewHistoryUseCase instantiates a history compilation use case.
func (c *Config) NewHistoryUseCase(
	p repo.Pool, d repo.Workdays, l repo.Ledger,
) *historyuc.UseCase {
	return historyuc.New(p, d, l)
}

// NewGarageUseCase instantiates a garage management use case.
func (c *Config) NewGarageUseCase(
	p repo.Pool, v repo.Vehicles,
) *garageuc.UseCase {
	return garageuc.New(p, v)
}

// NewProfileUseCase instantiates a profile and billing use case,
// wiring the identity and payment clients from the `c` settings.
func (c *Config) NewProfileUseCase() *profileuc.UseCase {
	return profileuc.New(
		c.Identity.NewClient(),
		c.Billing.NewClient(),
		c.Billing.PriceID,
		c.Billing.SuccessURL,
		c.Billing.CancelURL,
	)
}

// NewIdentityClient instantiates the identity service client alone,
// as needed by the authentication middleware.
func (c *Config) NewIdentityClient() *identity.Client {
	return c.Identity.NewClient()
}

// Database contains the database related configuration settings.
type Database struct {
	Host string // domain name or IP address of the DBMS server
	Port int    // port number of the DBMS server
	Name string // database name, like dmweb

	// AuthMethod specifies the database authentication method name.
	// This method indicates how passwords should be hashed before
	// being stored in the database, so they may be used by an
	// authentication operation successfully.
	// Currently, only scram-sha-1 and scram-sha-256 methods are
	// supported. The scram-sha-256 is the default value.
	AuthMethod string `yaml:"auth-method,omitempty"`

	// passwords maps each known role to its password, as read from
	// the environment during validation.
	passwords map[repo.Role]string `yaml:"-"`

	// hasher is instantiated based on the AuthMethod and is used by
	// the NewSchemaRepo method, so Schema repo instances may hash
	// passwords properly (as expected by the DBMS).
	hasher scrami.Hasher `yaml:"-"`
}

// ValidateAndNormalize checks the authentication method, prepares the
// corresponding hasher, and reads the role passwords from the
// environment. Only the admin password is mandatory at load time; the
// service role password may be absent while running `dmweb db init`
// for the first time.
func (d *Database) ValidateAndNormalize() error {
	switch am := d.AuthMethod; am {
	case "scram-sha-1":
		d.hasher = scram.SHA1()
	case "":
		d.AuthMethod = "scram-sha-256"
		fallthrough
	case "scram-sha-256":
		d.hasher = scram.SHA256()
	default:
		return fmt.Errorf(
			"unsupported database authentication method: %q", am,
		)
	}
	if d.Host == "" {
		d.Host = "127.0.0.1"
	}
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.Name == "" {
		return fmt.Errorf("database name is required")
	}
	d.passwords = map[repo.Role]string{
		repo.AdminRole:  os.Getenv(EnvDBAdminPassword),
		repo.NormalRole: os.Getenv(EnvDBPassword),
	}
	return nil
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the `d` settings.
func (d Database) ConnectionPool(
	ctx context.Context, r repo.Role,
) (repo.Pool, error) {
	u, err := d.ConnectionURL(r)
	if err != nil {
		return nil, err
	}
	p, err := postgres.NewPool(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("creating pool: %w", err)
	}
	return p, nil
}

// ConnectionURL returns the database connection URL embedding the
// host, port, role name, database name, and password value. The
// password comes from the environment variable which corresponds to
// the `r` role. Returned URL has the postgresql scheme.
func (d Database) ConnectionURL(r repo.Role) (string, error) {
	pass, ok := d.passwords[r]
	if !ok {
		return "", fmt.Errorf("unknown role: %q", r)
	}
	if pass == "" {
		return "", fmt.Errorf("no password in environment for %q", r)
	}
	u := url.URL{
		Scheme: "postgresql",
		User:   url.UserPassword(string(r), pass),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	return u.String(), nil
}

// NewSchemaRepo instantiates a fresh Schema repository using the
// hasher which matches the configured authentication method, so the
// ChangePasswords operation can hash passwords locally before sending
// them to the DBMS.
func (d Database) NewSchemaRepo() repo.Schema {
	return schemarp.New(d.hasher)
}

// Gin contains the gin-gonic related configuration settings.
// Fields are defined as pointers, so it is possible to detect if they
// are or are not initialized and fill the missing ones with their
// default values.
type Gin struct {
	Logger   *bool // Whether to register the gin.Logger() middleware
	Recovery *bool // Whether to register the gin.Recovery() middleware
}

func (g *Gin) validateAndNormalize() {
	t := true
	if g.Logger == nil {
		g.Logger = &t
	}
	if g.Recovery == nil {
		g.Recovery = &t
	}
}

// NewEngine instantiates a new gin-gonic engine instance based on
// the `g` settings.
func (g Gin) NewEngine() *gin.Engine {
	middlewares := make([]gin.HandlerFunc, 0, 2)
	if *g.Logger {
		middlewares = append(middlewares, gin.Logger())
	}
	if *g.Recovery {
		middlewares = append(middlewares, gin.Recovery())
	}
	return gin.New(middlewares...)
}

// Identity contains the hosted identity service settings. The
// service key is read from the environment during validation.
type Identity struct {
	BaseURL string `yaml:"base-url"`

	serviceKey string `yaml:"-"`
}

func (i *Identity) validateAndNormalize() error {
	if i.BaseURL == "" {
		return fmt.Errorf("identity base-url is required")
	}
	i.serviceKey = os.Getenv(EnvIdentityKey)
	if i.serviceKey == "" {
		return fmt.Errorf("%s is not set", EnvIdentityKey)
	}
	return nil
}

// NewClient instantiates an identity service client based on the `i`
// settings.
func (i Identity) NewClient() *identity.Client {
	return identity.New(i.BaseURL, i.serviceKey)
}

// Billing contains the hosted payment provider settings. The API
// secret key and the webhook endpoint secret are read from the
// environment during validation.
type Billing struct {
	BaseURL    string `yaml:"base-url"`
	PriceID    string `yaml:"price-id"`
	SuccessURL string `yaml:"success-url"`
	CancelURL  string `yaml:"cancel-url"`

	secretKey     string `yaml:"-"`
	webhookSecret string `yaml:"-"`
}

func (b *Billing) validateAndNormalize() error {
	if b.BaseURL == "" {
		b.BaseURL = "https://api.stripe.com"
	}
	if b.PriceID == "" {
		return fmt.Errorf("billing price-id is required")
	}
	if b.SuccessURL == "" || b.CancelURL == "" {
		return fmt.Errorf("billing redirect urls are required")
	}
	b.secretKey = os.Getenv(EnvBillingKey)
	if b.secretKey == "" {
		return fmt.Errorf("%s is not set", EnvBillingKey)
	}
	b.webhookSecret = os.Getenv(EnvWebhookSecret)
	if b.webhookSecret == "" {
		return fmt.Errorf("%s is not set", EnvWebhookSecret)
	}
	return nil
}

// NewClient instantiates a payment provider client based on the `b`
// settings.
func (b Billing) NewClient() *payment.Client {
	return payment.New(b.BaseURL, b.secretKey)
}

// WebhookSecret exposes the webhook endpoint secret for the billing
// webhook route registration.
func (b Billing) WebhookSecret() string {
	return b.webhookSecret
}
