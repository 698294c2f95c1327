package shared

type ServerConfig struct {
	Sqlite  SqliteConfig  `mapstructure:"sqlite" validate:"required"`
	Rolodex RolodexConfig `mapstructure:"rolodex" validate:"required"`
}

type SqliteConfig struct {
	PassPhrase string `mapstructure:"passPhrase" validate:"required"`
}

type RolodexConfig struct {
	// PEM-encoded RSA private key used to sign session tokens.
	PrivateKeyPem string         `mapstructure:"privateKeyPem" validate:"required"`
	Listener      ListenerConfig `mapstructure:"listener" validate:"required"`
	Session       SessionConfig  `mapstructure:"session" validate:"required"`
}

type ListenerConfig struct {
	Port int `mapstructure:"port" validate:"required"`
}

type SessionConfig struct {
	// CookieSecret authenticates the flash-notice cookie,
	// CsrfSecret the per-form CSRF tokens.
	CookieSecret string `mapstructure:"cookieSecret" validate:"required"`
	CsrfSecret   string `mapstructure:"csrfSecret" validate:"required"`
}
