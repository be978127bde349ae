package config

const (
	KeyAPIURL         = "nmdc_api_url"
	KeyRequestTimeout = "nmdc_request_timeout"
	KeyUserAgent      = "nmdc_user_agent"
	KeyClientID       = "nmdc_client_id"
	KeyClientSecret   = "nmdc_client_secret"
	KeyLogLevel       = "log_level"
	KeyTransport      = "transport"
	KeyHTTPAddr       = "http_addr"
	KeyServerName     = "server_name"
	KeyEnvFile        = "env_file"
)
