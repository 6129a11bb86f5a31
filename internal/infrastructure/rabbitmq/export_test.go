package rabbitmq

type PublishChannel = publishChannel

func NewPublisherWithChannel(ch PublishChannel, exchange string) *Publisher {
	return &Publisher{exchange: exchange, ch: ch}
}
