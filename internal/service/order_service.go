package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/cart"
	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/order"
	"github.com/iamzaidakbar/ecommerce-app/internal/datamodels/product"
	"github.com/iamzaidakbar/ecommerce-app/internal/infra/mq"
)

var (
	// ErrEmptyCart 购物车为空不能下单
	ErrEmptyCart = errors.New("cart is empty")
	// ErrNotOwner 订单不属于当前用户
	ErrNotOwner = errors.New("order does not belong to user")
)

// OrderService 下单与订单查询。
// Checkout 同步完成：快照购物车 -> 建 pending 订单 -> 清空购物车，
// 然后把订单号丢进 MQ，库存扣减和状态推进由 order-worker 异步完成。
type OrderService struct {
	repo        order.Repository
	cartRepo    cart.Repository
	productRepo product.Repository
	mqConn      *amqp.Connection
}

// NewOrderService 创建订单服务。mqConn 传 nil 时下单仍然成功，只是不发消息。
func NewOrderService(repo order.Repository, cartRepo cart.Repository, productRepo product.Repository, mqConn *amqp.Connection) *OrderService {
	return &OrderService{repo: repo, cartRepo: cartRepo, productRepo: productRepo, mqConn: mqConn}
}

// Checkout 用当前购物车内容下单。单价固化到订单行，之后改价不影响已下订单。
func (s *OrderService) Checkout(ctx context.Context, userID int64, shipping order.Address) (*order.Order, error) {
	items, err := s.cartRepo.ListItems(ctx, userID)
	if err != nil {
		GetMonitor().RecordDBError()
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	o := &order.Order{
		OrderNo:  uuid.NewString(),
		UserID:   userID,
		Status:   order.StatusPending,
		Total:    cart.Total(items),
		Shipping: shipping,
	}
	for _, it := range items {
		var unitPrice int64
		if it.Product != nil {
			unitPrice = it.Product.Price
		}
		o.Items = append(o.Items, order.Item{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: unitPrice,
		})
	}

	if err := s.repo.Create(ctx, o); err != nil {
		GetMonitor().RecordDBError()
		return nil, err
	}
	if err := s.cartRepo.Clear(ctx, userID); err != nil {
		// 订单已落库，购物车清空失败只记日志，用户下次清空即可
		zap.L().Warn("clear cart after checkout failed", zap.Int64("user_id", userID), zap.Error(err))
	}
	GetMonitor().RecordOrderPlaced()

	s.publishOrder(o.OrderNo)
	return o, nil
}

// publishOrder 把订单号发到队列，worker 侧扣库存并推进状态
func (s *OrderService) publishOrder(orderNo string) {
	if s.mqConn == nil {
		return
	}
	ch, err := s.mqConn.Channel()
	if err != nil {
		GetMonitor().RecordMQError()
		zap.L().Error("open mq channel failed", zap.Error(err))
		return
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(mq.OrderQueue, true, false, false, false, nil); err != nil {
		GetMonitor().RecordMQError()
		zap.L().Error("declare order queue failed", zap.Error(err))
		return
	}
	err = ch.Publish("", mq.OrderQueue, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "text/plain",
		Body:         []byte(orderNo),
	})
	if err != nil {
		GetMonitor().RecordMQError()
		zap.L().Error("publish order failed", zap.String("order_no", orderNo), zap.Error(err))
	}
}

// ProcessOrder worker 侧消费：按订单行扣库存，pending -> processing。
// 任何一行库存不够整单失败，已扣的行回滚。
func (s *OrderService) ProcessOrder(ctx context.Context, orderNo string) error {
	o, err := s.repo.GetByOrderNo(ctx, orderNo)
	if err != nil {
		GetMonitor().RecordOrderFailed()
		return err
	}
	if o.Status != order.StatusPending {
		// 重复投递，直接确认
		return nil
	}

	var deducted []order.Item
	for _, it := range o.Items {
		p, err := s.productRepo.GetByID(ctx, it.ProductID)
		if err != nil {
			s.rollbackStock(ctx, deducted)
			GetMonitor().RecordOrderFailed()
			return err
		}
		if p.Stock < it.Quantity {
			s.rollbackStock(ctx, deducted)
			GetMonitor().RecordOrderFailed()
			return fmt.Errorf("%w: product %d", ErrOutOfStock, it.ProductID)
		}
		p.Stock -= it.Quantity
		if err := s.productRepo.Update(ctx, p); err != nil {
			s.rollbackStock(ctx, deducted)
			GetMonitor().RecordOrderFailed()
			return err
		}
		deducted = append(deducted, it)
	}

	if err := s.repo.UpdateStatus(ctx, o.ID, order.StatusProcessing); err != nil {
		s.rollbackStock(ctx, deducted)
		GetMonitor().RecordOrderFailed()
		return err
	}
	GetMonitor().RecordOrderProcessed()
	zap.L().Info("order processed", zap.String("order_no", orderNo))
	return nil
}

func (s *OrderService) rollbackStock(ctx context.Context, deducted []order.Item) {
	for _, it := range deducted {
		p, err := s.productRepo.GetByID(ctx, it.ProductID)
		if err != nil {
			zap.L().Error("rollback stock failed", zap.Int64("product_id", it.ProductID), zap.Error(err))
			continue
		}
		p.Stock += it.Quantity
		if err := s.productRepo.Update(ctx, p); err != nil {
			zap.L().Error("rollback stock failed", zap.Int64("product_id", it.ProductID), zap.Error(err))
		}
	}
}

// ListByUser 当前用户的订单列表
func (s *OrderService) ListByUser(ctx context.Context, userID int64) ([]*order.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// GetByID 查单个订单，校验归属
func (s *OrderService) GetByID(ctx context.Context, userID, orderID int64) (*order.Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, ErrNotOwner
	}
	return o, nil
}

// ListRecent admin 用：最近订单
func (s *OrderService) ListRecent(ctx context.Context, limit int) ([]*order.Order, error) {
	return s.repo.ListRecent(ctx, limit)
}

// UpdateStatus admin 用：推进订单状态
func (s *OrderService) UpdateStatus(ctx context.Context, orderID int64, status string) error {
	switch status {
	case order.StatusPending, order.StatusProcessing, order.StatusShipped, order.StatusDelivered:
	default:
		return fmt.Errorf("unknown order status: %s", status)
	}
	return s.repo.UpdateStatus(ctx, orderID, status)
}
