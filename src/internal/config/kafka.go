package config

import (
	"transfer-service/src/pkg/kafka"
	"transfer-service/src/pkg/log"

	"github.com/spf13/viper"
)

func NewKafkaConfig(viper *viper.Viper) kafka.Cfg {
	configKafka := kafka.Cfg{
		KafkaUrl:      viper.GetString("kafka.bootstrap.servers"),
		KafkaUsername: viper.GetString("kafka.username"),
		KafkaPassword: viper.GetString("kafka.password"),
		AppName:       viper.GetString("kafka.app.name"),
	}
	return kafka.InitKafkaConfig(configKafka)
}

func NewKafkaProducer(config *viper.Viper, log log.Log) kafka.Producer {
	if !config.GetBool("kafka.producer.enabled") {
		log.Info("kafka-config", "Kafka producer is disabled in configuration", "kafka", "")
		return nil
	}

	kafkaProducer, err := kafka.NewProducer(kafka.GetConfig(), log)
	if err != nil {
		panic(err)
	}

	return kafkaProducer
}
