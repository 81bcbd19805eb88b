package config

type InternalConfig struct {
	App            App
	JWT            AppJWT
	Minio          AppMinio
	RabbitMQ       AppRabbitMQ
	PaymentGateway AppPaymentGateway
}

type App struct {
	Env                                   string
	Port                                  string
	Version                               string
	Timezone                              string
	BaseUrl                               string
	EndpointPrefix                        string
	MaxRequests                           int
	ShutdownTimeoutInSeconds              int
	RequestBodyLimitInMegabyte            int
	PaymentGatewayRequestTimeoutInSeconds int
	AdminAPIKey                           string
}

type AppJWT struct {
	Secret        string
	ExpTimeInHour int
}

type AppMinio struct {
	BucketName                        string
	ResultDocumentMaxUploadSizeInMB   int
	PreSignedUrlObjectExpiryTimeInHours int
}

type AppRabbitMQ struct {
	NotificationQueue string
}

type AppPaymentGateway struct {
	BaseUrl       string
	ApiKey        string
	HMACSecret    string
	IntegrationID string
	IframeID      string
}
