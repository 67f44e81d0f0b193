package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/minbase/account-service/config"
	"github.com/minbase/account-service/pkg/helpers"
)

// Container holds the infrastructure singletons constructed once in main and
// injected into modules. It is passed explicitly; there is no package-level
// state.
type Container struct {
	Cfg       *config.Config
	Logger    *logrus.Logger
	Redis     *redis.Client
	GCS       *storage.Client
	JWT       *helpers.JWTManager
	RabbitPub *helpers.RabbitPublisher
	ES        *elasticsearch.Client
}
