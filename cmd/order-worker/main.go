package main

import (
	"context"
	"errors"
	"log"

	"go.uber.org/zap"

	"github.com/iamzaidakbar/ecommerce-app/internal/config"
	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/order"
	"github.com/iamzaidakbar/ecommerce-app/internal/infra/mq"
	"github.com/iamzaidakbar/ecommerce-app/internal/logging"
	"github.com/iamzaidakbar/ecommerce-app/internal/repository/mysql"
	"github.com/iamzaidakbar/ecommerce-app/internal/service"
)

// order-worker 消费下单消息：扣库存并把订单从 pending 推进到 processing。
// web 端下单只落订单记录，重活都在这里做，下单接口因此保持低延迟。
func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}
	logging.Init(false)

	db := mysql.Init(&cfg.MySQL)
	mqConn := mq.Init(&cfg.RabbitMQ)

	orderRepo := mysql.NewOrderRepository(db)
	cartRepo := mysql.NewCartRepository(db)
	productRepo := mysql.NewProductRepository(db)
	orderSvc := service.NewOrderService(orderRepo, cartRepo, productRepo, mqConn)

	ch, err := mqConn.Channel()
	if err != nil {
		zap.L().Fatal("open channel failed", zap.Error(err))
	}
	defer ch.Close()

	if _, err = ch.QueueDeclare(mq.OrderQueue, true, false, false, false, nil); err != nil {
		zap.L().Fatal("declare queue failed", zap.Error(err))
	}

	// 手动确认，处理失败的消息按情况重回队列
	msgs, err := ch.Consume(mq.OrderQueue, "", false, false, false, false, nil)
	if err != nil {
		zap.L().Fatal("consume failed", zap.Error(err))
	}

	zap.L().Info("order worker started, waiting for messages")

	ctx := context.Background()
	for d := range msgs {
		orderNo := string(d.Body)
		if orderNo == "" {
			_ = d.Nack(false, false)
			continue
		}

		err := orderSvc.ProcessOrder(ctx, orderNo)
		switch {
		case err == nil:
			if err := d.Ack(false); err != nil {
				zap.L().Warn("ack failed", zap.Error(err))
			}
		case errors.Is(err, order.ErrNotFound), errors.Is(err, service.ErrOutOfStock):
			// 重试也不会成功，丢弃
			zap.L().Warn("order dropped", zap.String("order_no", orderNo), zap.Error(err))
			_ = d.Nack(false, false)
		default:
			// 数据库抖动之类的临时错误，重回队列
			zap.L().Error("process order failed, requeue", zap.String("order_no", orderNo), zap.Error(err))
			_ = d.Nack(false, true)
		}
	}
}
