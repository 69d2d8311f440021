package config

type Config struct {
	Debug  bool   `mapstructure:"debug"`
	Server Server `mapstructure:"server"`
	Auth   Auth   `mapstructure:"auth"`
	Record Record `mapstructure:"record"`
	Blob   Blob   `mapstructure:"blob"`
	Mail   Mail   `mapstructure:"mail"`
}

type Server struct {
	Address   string       `mapstructure:"address" validate:"required,hostname|ip"`
	Port      int          `mapstructure:"port" validate:"required,min=1,max=65535"`
	PublicUrl string       `mapstructure:"public_url" validate:"required,url"`
	Limits    ServerLimits `mapstructure:"limits"`
}

type ServerLimits struct {
	MaxFileSize     uint `mapstructure:"max_file_size" validate:"required"`
	MaxMultipartMem uint `mapstructure:"max_multipart_mem" validate:"required"`
}

type Auth struct {
	JwtSecret    string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenTtlMins int    `mapstructure:"token_ttl_mins" validate:"required,min=1"`
}

type Record struct {
	Driver      string  `mapstructure:"driver" validate:"required,oneof=mysql postgres sqlite"`
	DSN         string  `mapstructure:"dsn" validate:"required"`
	TablePrefix *string `mapstructure:"table_prefix" validate:"omitempty,identifier"`
}

type Blob struct {
	Strategy   string              `mapstructure:"strategy" validate:"required,oneof=filesystem s3 noop"`
	Filesystem *FilesystemStrategy `mapstructure:"filesystem" validate:"required_if=Strategy filesystem"`
	S3         *S3Strategy         `mapstructure:"s3" validate:"required_if=Strategy s3"`
}

type FilesystemStrategy struct {
	Path      string `mapstructure:"path" validate:"required,abspath"`
	PublicUrl string `mapstructure:"public_url" validate:"required"`
}

type S3Strategy struct {
	AccessKeyId   string `mapstructure:"access_key_id" validate:"required"`
	SecretKeyId   string `mapstructure:"secret_key_id" validate:"required"`
	Region        string `mapstructure:"region" validate:"required"`
	Bucket        string `mapstructure:"bucket" validate:"required"`
	Endpoint      string `mapstructure:"endpoint"`
	PublicBaseUrl string `mapstructure:"public_base_url" validate:"required,url"`
}

type Mail struct {
	Strategy       string        `mapstructure:"strategy" validate:"required,oneof=smtp noop"`
	SupportAddress string        `mapstructure:"support_address" validate:"required,email"`
	Smtp           *SmtpStrategy `mapstructure:"smtp" validate:"required_if=Strategy smtp"`
}

type SmtpStrategy struct {
	Host     string `mapstructure:"host" validate:"required,hostname|ip"`
	Port     int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Username string `mapstructure:"username" validate:"required"`
	Password string `mapstructure:"password" validate:"required"`
	From     string `mapstructure:"from" validate:"required"`
}
