package kafka

import (
	"strings"
	"time"

	"transfer-service/src/pkg/log"

	"github.com/IBM/sarama"
)

type Producer interface {
	Publish(topic string, key, value []byte) error
	Close() error
}

type Cfg struct {
	KafkaUrl      string
	KafkaUsername string
	KafkaPassword string
	AppName       string
}

var kafkaConfig Cfg

func InitKafkaConfig(cfg Cfg) Cfg {
	kafkaConfig = cfg
	return kafkaConfig
}

func GetConfig() Cfg {
	return kafkaConfig
}

type syncProducer struct {
	producer sarama.SyncProducer
	log      log.Log
}

func NewProducer(cfg Cfg, logger log.Log) (Producer, error) {
	saramaCfg := sarama.NewConfig()
	saramaCfg.ClientID = cfg.AppName
	saramaCfg.Producer.Return.Successes = true
	saramaCfg.Producer.RequiredAcks = sarama.WaitForAll
	saramaCfg.Producer.Retry.Max = 3
	saramaCfg.Producer.Retry.Backoff = 500 * time.Millisecond
	saramaCfg.Producer.Timeout = 5 * time.Second

	if cfg.KafkaUsername != "" {
		saramaCfg.Net.SASL.Enable = true
		saramaCfg.Net.SASL.Mechanism = sarama.SASLTypePlaintext
		saramaCfg.Net.SASL.User = cfg.KafkaUsername
		saramaCfg.Net.SASL.Password = cfg.KafkaPassword
	}

	brokers := strings.Split(cfg.KafkaUrl, ",")
	producer, err := sarama.NewSyncProducer(brokers, saramaCfg)
	if err != nil {
		logger.Error("kafka-init", err.Error(), "NewProducer", cfg.KafkaUrl)
		return nil, err
	}

	logger.Info("kafka-init", "kafka producer connected", "NewProducer", cfg.KafkaUrl)
	return &syncProducer{producer: producer, log: logger}, nil
}

func (p *syncProducer) Publish(topic string, key, value []byte) error {
	message := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.ByteEncoder(key),
		Value: sarama.ByteEncoder(value),
	}

	_, _, err := p.producer.SendMessage(message)
	if err != nil {
		p.log.Error("kafka-publish", err.Error(), "Publish", topic)
		return err
	}

	return nil
}

func (p *syncProducer) Close() error {
	return p.producer.Close()
}
