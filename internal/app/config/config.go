package config

import (
	"medilab-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		PostgresDB: PostgresDB{
			Host:     utils.GetEnvString("POSTGRES_HOST", "localhost"),
			Port:     utils.GetEnvString("POSTGRES_PORT", "5432"),
			Username: utils.GetEnvString("POSTGRES_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("POSTGRES_PASSWORD", "defaultPassword"),
			DBName:   utils.GetEnvString("POSTGRES_DB_NAME", "medilab"),
		},
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "medilab"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", "customRedisPass"),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "defaultPassword"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "defaultPassword"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                                   utils.GetEnvString("APP_ENV", "development"),
			Port:                                  utils.GetEnvString("APP_PORT", ":8080"),
			Version:                               utils.GetEnvString("APP_VERSION", "v1"),
			Timezone:                              utils.GetEnvString("APP_TIMEZONE", "Africa/Cairo"),
			BaseUrl:                               utils.GetEnvString("APP_BASE_URL", "http://localhost:8080"),
			EndpointPrefix:                        utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:                           utils.GetEnvInt("APP_MAX_REQUESTS", 100),
			ShutdownTimeoutInSeconds:              utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			RequestBodyLimitInMegabyte:            utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 5),
			PaymentGatewayRequestTimeoutInSeconds: utils.GetEnvInt("APP_PAYMENT_GATEWAY_REQUEST_TIMEOUT_IN_SECONDS", 15),
			AdminAPIKey:                           utils.GetEnvString("APP_ADMIN_API_KEY", ""),
		},
		JWT: AppJWT{
			Secret:        utils.GetEnvString("JWT_SECRET", "defaultSecret"),
			ExpTimeInHour: utils.GetEnvInt("JWT_EXP_TIME_IN_HOUR", 24),
		},
		Minio: AppMinio{
			BucketName:                          utils.GetEnvString("MINIO_BUCKET_NAME", "lab-result-documents"),
			ResultDocumentMaxUploadSizeInMB:     utils.GetEnvInt("MINIO_RESULT_DOCUMENT_MAX_UPLOAD_SIZE_IN_MB", 10),
			PreSignedUrlObjectExpiryTimeInHours: utils.GetEnvInt("MINIO_PRE_SIGNED_URL_OBJECT_EXPIRY_TIME_IN_HOURS", 24),
		},
		RabbitMQ: AppRabbitMQ{
			NotificationQueue: utils.GetEnvString("RABBITMQ_NOTIFICATION_QUEUE", "notification_service_queue"),
		},
		PaymentGateway: AppPaymentGateway{
			BaseUrl:       utils.GetEnvString("PAYMENT_GATEWAY_BASE_URL", "https://accept.paymob.com/api"),
			ApiKey:        utils.GetEnvString("PAYMENT_GATEWAY_API_KEY", ""),
			HMACSecret:    utils.GetEnvString("PAYMENT_GATEWAY_HMAC_SECRET", ""),
			IntegrationID: utils.GetEnvString("PAYMENT_GATEWAY_INTEGRATION_ID", ""),
			IframeID:      utils.GetEnvString("PAYMENT_GATEWAY_IFRAME_ID", ""),
		},
	}
}
