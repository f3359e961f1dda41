package sales_report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/domain"
	catalogRepo "github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/infra/storage/catalog"
)

const (
	formatJSON = "json"
	formatPDF  = "pdf"
)

// UseCase use case отчетов о продажах прачечной
type UseCase struct {
	shopRepo     ShopRepository
	reportRepo   ReportRepository
	txManager    TransactionManager
	renderer     Renderer
	sink         DocumentSink
	metrics      Metrics
	timeProvider TimeProvider
	options      Options
	logger       Logger
}

// NewUseCase создает новый экземпляр use case. sink == nil отключает публикацию документов.
func NewUseCase(
	shopRepo ShopRepository,
	reportRepo ReportRepository,
	txManager TransactionManager,
	renderer Renderer,
	sink DocumentSink,
	metrics Metrics,
	options Options,
	logger Logger,
) *UseCase {
	if options.DefaultLocation == nil {
		options.DefaultLocation = time.UTC
	}
	return &UseCase{
		shopRepo:     shopRepo,
		reportRepo:   reportRepo,
		txManager:    txManager,
		renderer:     renderer,
		sink:         sink,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		options:      options,
		logger:       logger,
	}
}

// GetSalesReport строит отчет о продажах прачечной за период
func (uc *UseCase) GetSalesReport(ctx context.Context, req *Request) (*Response, error) {
	report, err := uc.build(ctx, "GetSalesReport", req)
	if err != nil {
		return nil, err
	}
	uc.countReport(report.Granularity, formatJSON)
	return report, nil
}

// GetSalesReportDocument строит отчет и отрисовывает его в PDF
func (uc *UseCase) GetSalesReportDocument(ctx context.Context, req *Request) (*Document, error) {
	report, err := uc.build(ctx, "GetSalesReportDocument", req)
	if err != nil {
		return nil, err
	}

	doc, err := uc.render(report)
	if err != nil {
		uc.logger.Error("GetSalesReportDocument: failed to render report for shop=%d: %v", req.ShopID, err)
		return nil, err
	}

	uc.countReport(report.Granularity, formatPDF)
	uc.logger.Info("GetSalesReportDocument: rendered %s (%d bytes)", doc.Filename, len(doc.Data))
	return doc, nil
}

// PublishSalesReportDocument отрисовывает отчет, загружает его в хранилище документов
// и возвращает временную ссылку на скачивание
func (uc *UseCase) PublishSalesReportDocument(ctx context.Context, req *Request) (*PublishedDocument, error) {
	if uc.sink == nil {
		uc.logger.Warn("PublishSalesReportDocument: document storage is disabled")
		return nil, ErrStorageDisabled
	}

	doc, err := uc.GetSalesReportDocument(ctx, req)
	if err != nil {
		return nil, err
	}

	url, err := uc.sink.Upload(ctx, doc.Filename, doc.Data, doc.ContentType)
	if err != nil {
		uc.logger.Error("PublishSalesReportDocument: failed to upload %s: %v", doc.Filename, err)
		return nil, fmt.Errorf("%w: upload document: %v", ErrInternal, err)
	}

	uc.logger.Info("PublishSalesReportDocument: published %s for shop=%d", doc.Filename, req.ShopID)
	return &PublishedDocument{
		Filename:  doc.Filename,
		URL:       url,
		ExpiresAt: uc.timeProvider.Now().Add(uc.options.URLExpiry),
	}, nil
}

// build проверяет запрос, права и агрегирует выборку, прочитанную одним снимком
func (uc *UseCase) build(ctx context.Context, op string, req *Request) (*Response, error) {
	uc.logger.Info("%s: shop=%d, granularity=%s, actor=%d role=%s", op, req.ShopID, req.Granularity, req.Actor.AccountID, req.Actor.Role)

	// 1. Валидация входных данных
	if req.ShopID <= 0 {
		return nil, fmt.Errorf("%w: shopId must be positive", ErrInvalidInput)
	}

	granularity, err := domain.ParseGranularity(req.Granularity)
	if err != nil {
		uc.logger.Warn("%s: %v", op, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	loc, err := resolveLocation(req.Timezone, uc.options.DefaultLocation)
	if err != nil {
		uc.logger.Warn("%s: %v", op, err)
		return nil, err
	}

	period, err := resolvePeriod(req, granularity, loc, uc.timeProvider.Now())
	if err != nil {
		uc.logger.Warn("%s: %v", op, err)
		return nil, err
	}

	// 2. Прачечная, права и выборка читаются в одной read-only транзакции
	var (
		shop       *domain.Shop
		candidates []domain.ReportCandidate
	)
	err = uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		shop, err = uc.shopRepo.GetShopByID(txCtx, req.ShopID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrShopNotFound) {
				uc.logger.Warn("%s: shop id=%d not found", op, req.ShopID)
				return ErrShopNotFound
			}
			uc.logger.Error("%s: failed to get shop id=%d: %v", op, req.ShopID, err)
			return fmt.Errorf("%w: failed to get shop: %v", ErrInternal, err)
		}

		if !canViewReports(req.Actor, shop) {
			uc.logger.Warn("%s: account=%d role=%s may not view reports of shop=%d", op, req.Actor.AccountID, req.Actor.Role, req.ShopID)
			return ErrAccessDenied
		}

		candidates, err = uc.reportRepo.ListReportCandidates(txCtx, domain.SalesReportFilter{
			ShopID: req.ShopID,
			From:   period.From,
			To:     period.To,
		})
		if err != nil {
			uc.logger.Error("%s: failed to list bookings for shop=%d: %v", op, req.ShopID, err)
			return fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 3. Агрегация
	rows := Aggregate(candidates, req.ShopID, period, granularity)
	if len(rows) == 0 {
		uc.logger.Info("%s: no sales for shop=%d between %s and %s", op, req.ShopID,
			period.From.Format(time.RFC3339), period.To.Format(time.RFC3339))
		return nil, ErrNoSales
	}

	orders, sales := totals(rows)
	uc.logger.Info("%s: shop=%d produced %d rows, %d orders", op, req.ShopID, len(rows), orders)

	return &Response{
		ShopID:      shop.ID,
		ShopName:    shop.Name,
		Granularity: granularity,
		From:        period.From,
		To:          period.To,
		Timezone:    loc.String(),
		Rows:        rows,
		TotalOrders: orders,
		TotalSales:  sales,
	}, nil
}

func (uc *UseCase) render(report *Response) (*Document, error) {
	title := fmt.Sprintf("%s: %s, %s - %s (%s)",
		uc.documentTitle(),
		report.ShopName,
		report.From.Format(domain.DateFormat),
		report.To.Format(domain.DateFormat),
		report.Granularity,
	)

	data, err := uc.renderer.Render(title, report.Rows)
	if err != nil {
		return nil, fmt.Errorf("%w: render document: %v", ErrInternal, err)
	}

	return &Document{
		Filename: fmt.Sprintf("sales-report-%d-%s-%s-%s.pdf",
			report.ShopID,
			report.Granularity,
			report.From.Format(domain.DateFormat),
			report.To.Format(domain.DateFormat),
		),
		ContentType: PDFContentType,
		Data:        data,
	}, nil
}

func (uc *UseCase) documentTitle() string {
	if uc.options.DocumentTitle == "" {
		return "Sales Report"
	}
	return uc.options.DocumentTitle
}

func (uc *UseCase) countReport(granularity domain.Granularity, format string) {
	if uc.metrics != nil {
		uc.metrics.IncReportGenerated(string(granularity), format)
	}
}

// canViewReports администратор видит любые отчеты, прачечная - только свои
func canViewReports(actor domain.Actor, shop *domain.Shop) bool {
	if actor.IsAdmin() {
		return true
	}
	return actor.Role == domain.RoleShop && shop.OwnerID == actor.AccountID
}
