package main

import (
	"road_watch/config"
	"road_watch/core/global"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

// InitRegistry khởi tạo registry và đăng ký các collections
func InitRegistry() {
	InitCollections(global.MongoDB_Session, global.ServerConfig)
	logrus.Info("Initialized collection registry")
}

// InitCollections đăng ký các collections MongoDB vào registry
func InitCollections(client *mongo.Client, cfg *config.Configuration) {
	db := client.Database(cfg.MongoDB_DBName)
	colNames := []string{
		global.MongoDB_ColNames.Reports,
		global.MongoDB_ColNames.Assignments,
		global.MongoDB_ColNames.Employees,
		global.MongoDB_ColNames.Notifications,
		global.MongoDB_ColNames.Counters,
	}

	for _, name := range colNames {
		global.RegistryCollections.Register(name, db.Collection(name))
		logrus.Infof("Registered collection: %s", name)
	}
}
