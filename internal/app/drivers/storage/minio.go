package storage

import (
	"context"
	"fmt"
	"log"
	"medilab-service/internal/app/config"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const minioConnectTimeout = 5 * time.Second

func NewMinio(driverConfig *config.DriverConfig) *minio.Client {
	endPoint := fmt.Sprintf("%s:%s", driverConfig.Minio.Host, driverConfig.Minio.Port)
	minioClient, err := minio.New(endPoint, &minio.Options{
		Creds:  credentials.NewStaticV4(driverConfig.Minio.Username, driverConfig.Minio.Password, ""),
		Secure: driverConfig.Minio.UseSSL,
	})
	if err != nil {
		log.Fatalf("Failed to initialize Minio Client: %s", err.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), minioConnectTimeout)
	defer cancel()
	if _, err := minioClient.ListBuckets(ctx); err != nil {
		log.Fatalf("Failed to connect to minio: %s", err.Error())
	}

	log.Println("Successfully connected to minio")
	return minioClient
}
