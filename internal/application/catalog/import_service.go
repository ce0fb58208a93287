package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopapi/backend/internal/domain/access"
	"github.com/shopapi/backend/internal/domain/catalog"
	"github.com/shopapi/backend/internal/domain/shared"
	catalogimport "github.com/shopapi/backend/internal/infrastructure/import"
	"github.com/shopapi/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// maxParameterValue matches the product_parameters.value column
const maxParameterValue = 100

// DocumentArchiver stores the raw import document after a successful commit
type DocumentArchiver interface {
	Archive(ctx context.Context, shopID uint64, data []byte) (string, error)
}

// ImportService writes a supplier's catalog document in one transaction
type ImportService struct {
	txScope   TransactionScope
	parser    *catalogimport.Parser
	archiver  DocumentArchiver
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewImportService creates a new ImportService. archiver may be nil.
func NewImportService(
	txScope TransactionScope,
	parser *catalogimport.Parser,
	archiver DocumentArchiver,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *ImportService {
	return &ImportService{
		txScope:   txScope,
		parser:    parser,
		archiver:  archiver,
		publisher: publisher,
		logger:    logger,
	}
}

// Import parses and validates data, then upserts shop, categories, products,
// listings and parameters atomically. Nothing is written when the document
// is missing a key, malformed, or violates a field rule.
func (s *ImportService) Import(ctx context.Context, actor access.Actor, data []byte) (*ImportResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "catalog_import", "import")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrUserID, actor.UserID,
		telemetry.SpanAttrDocBytes, len(data),
	)

	if !actor.Partner {
		return nil, shared.ErrForbidden.WithMessage("Import is available to shop users only")
	}

	doc, err := s.parser.Parse(data)
	if err != nil {
		return nil, err
	}
	if err := validateDocument(doc, actor.UserID); err != nil {
		return nil, err
	}

	var (
		result ImportResult
		shop   *catalog.Shop
	)
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		w := &importWriter{ctx: ctx, repos: repos, result: &result}
		var err error
		shop, err = w.upsertShop(doc.Shop, actor.UserID)
		if err != nil {
			return err
		}
		categoryIDs, err := w.upsertCategories(doc.Categories, shop.ID)
		if err != nil {
			return err
		}
		return w.writeItems(doc.Items, categoryIDs, shop.ID)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		s.logger.Warn("Catalog import rolled back",
			zap.Uint64("user_id", actor.UserID),
			zap.Error(err))
		return nil, err
	}

	result.ShopID = shop.ID
	result.Shop = shop.Name
	telemetry.SetAttribute(span, telemetry.SpanAttrShopID, shop.ID)
	telemetry.SetOK(span)
	result.Categories = len(doc.Categories)

	if s.archiver != nil {
		key, err := s.archiver.Archive(ctx, shop.ID, data)
		if err != nil {
			s.logger.Error("Failed to archive import document", zap.Uint64("shop_id", shop.ID), zap.Error(err))
		} else {
			result.ArchiveKey = key
			telemetry.AddEvent(span, "document_archived", "key", key)
		}
	}

	s.logger.Info("Catalog imported",
		zap.Uint64("shop_id", shop.ID),
		zap.Int("categories", result.Categories),
		zap.Int("product_infos_added", result.ProductInfosAdded),
		zap.Int("product_infos_updated", result.ProductInfosUpdated))

	if s.publisher != nil {
		event := catalog.NewCatalogImportedEvent(shop, result.Categories, result.ProductInfosAdded, result.ProductInfosUpdated)
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Error("Failed to publish import event", zap.Error(err))
		}
	}
	return &result, nil
}

// importWriter carries the state of one import transaction
type importWriter struct {
	ctx    context.Context
	repos  TransactionalRepositories
	result *ImportResult
	params map[string]*catalog.Parameter
}

// upsertShop returns the user's shop, creating it on first import.
// A user who already owns a shop under another name gets ErrDuplicateShop.
func (w *importWriter) upsertShop(name string, userID uint64) (*catalog.Shop, error) {
	shop, err := w.repos.ShopRepo().FindByUser(w.ctx, userID)
	if err == nil {
		if !strings.EqualFold(shop.Name, strings.TrimSpace(name)) {
			return nil, catalog.ErrDuplicateShop.WithMessage(
				fmt.Sprintf("User already owns shop %q", shop.Name))
		}
		return shop, nil
	}
	if !errors.Is(err, catalog.ErrShopNotFound) {
		return nil, err
	}

	shop, err = catalog.NewShop(name, userID)
	if err != nil {
		return nil, err
	}
	if err := w.repos.ShopRepo().Create(w.ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

// upsertCategories resolves every declared category by name and links it to the shop
func (w *importWriter) upsertCategories(categories []catalogimport.Category, shopID uint64) ([]uint64, error) {
	ids := make([]uint64, len(categories))
	byName := make(map[string]uint64, len(categories))
	for i, c := range categories {
		if id, ok := byName[c.Name]; ok {
			ids[i] = id
			continue
		}

		category, err := w.repos.CategoryRepo().FindByName(w.ctx, c.Name)
		if errors.Is(err, catalog.ErrCategoryNotFound) {
			category, err = catalog.NewCategory(c.Name)
			if err != nil {
				return nil, atPath(err, fmt.Sprintf("categories[%d]", i))
			}
			err = w.repos.CategoryRepo().Create(w.ctx, category)
		}
		if err != nil {
			return nil, err
		}
		if err := w.repos.CategoryRepo().AttachShop(w.ctx, category.ID, shopID); err != nil {
			return nil, err
		}
		ids[i] = category.ID
		byName[c.Name] = category.ID
	}
	return ids, nil
}

// pendingParam points at a parameter value not yet stored
type pendingParam struct {
	info  *catalog.ProductInfo
	index int
}

// writeItems upserts products and listings. New listings and new parameter
// values are collected and inserted in two batches after the loop.
func (w *importWriter) writeItems(items []catalogimport.Item, categoryIDs []uint64, shopID uint64) error {
	var (
		newInfos  []*catalog.ProductInfo
		newParams []pendingParam
		seen      = make(map[uint64]*catalog.ProductInfo)
	)

	for i, item := range items {
		path := fmt.Sprintf("items[%d]", i)
		product, err := w.upsertProduct(item.Name, categoryIDs[item.CategoryIndex])
		if err != nil {
			return atPath(err, path)
		}

		listing := catalog.Listing{Price: item.Price, PriceRRC: item.PriceRRC, Quantity: item.Quantity}
		info, ok := seen[product.ID]
		switch {
		case ok:
			if err := info.UpdateListing(listing); err != nil {
				return atPath(err, path)
			}
		default:
			info, err = w.repos.ProductInfoRepo().FindByProductAndShop(w.ctx, product.ID, shopID)
			switch {
			case err == nil:
				if err := info.UpdateListing(listing); err != nil {
					return atPath(err, path)
				}
				w.result.ProductInfosUpdated++
			case errors.Is(err, catalog.ErrProductInfoNotFound):
				info, err = catalog.NewProductInfo(product.ID, shopID, listing)
				if err != nil {
					return atPath(err, path)
				}
				newInfos = append(newInfos, info)
				w.result.ProductInfosAdded++
			default:
				return err
			}
			seen[product.ID] = info
		}

		if !info.IsNew() {
			if err := w.repos.ProductInfoRepo().Update(w.ctx, info); err != nil {
				return err
			}
		}

		for _, p := range item.Parameters {
			param, err := w.parameter(p.Name)
			if err != nil {
				return atPath(err, path)
			}
			row, created := info.SetParameter(param, p.Value)
			switch {
			case created:
				newParams = append(newParams, pendingParam{info: info, index: len(info.Parameters) - 1})
			case row.ID != 0:
				if err := w.repos.ProductParameterRepo().UpdateValue(w.ctx, row.ID, p.Value); err != nil {
					return err
				}
			}
		}
	}

	if err := w.repos.ProductInfoRepo().CreateBatch(w.ctx, newInfos); err != nil {
		return err
	}

	rows := make([]*catalog.ProductParameter, len(newParams))
	for i, pp := range newParams {
		row := &pp.info.Parameters[pp.index]
		row.ProductInfoID = pp.info.ID
		rows[i] = row
	}
	if err := w.repos.ProductParameterRepo().CreateBatch(w.ctx, rows); err != nil {
		return err
	}
	w.result.Parameters = len(rows)
	return nil
}

func (w *importWriter) upsertProduct(name string, categoryID uint64) (*catalog.Product, error) {
	product, err := w.repos.ProductRepo().FindByNameAndCategory(w.ctx, name, categoryID)
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, catalog.ErrProductNotFound) {
		return nil, err
	}
	product, err = catalog.NewProduct(name, categoryID)
	if err != nil {
		return nil, err
	}
	if err := w.repos.ProductRepo().Create(w.ctx, product); err != nil {
		return nil, err
	}
	w.result.ProductsCreated++
	return product, nil
}

// parameter returns the named parameter, creating it once per import
func (w *importWriter) parameter(name string) (*catalog.Parameter, error) {
	if w.params == nil {
		w.params = make(map[string]*catalog.Parameter)
	}
	if p, ok := w.params[name]; ok {
		return p, nil
	}

	p, err := w.repos.ParameterRepo().FindByName(w.ctx, name)
	if errors.Is(err, catalog.ErrParameterNotFound) {
		p, err = catalog.NewParameter(name)
		if err != nil {
			return nil, err
		}
		err = w.repos.ParameterRepo().Create(w.ctx, p)
	}
	if err != nil {
		return nil, err
	}
	w.params[name] = p
	return p, nil
}

// validateDocument applies the entity field rules to the whole document
// before the transaction opens, reporting every offending field at once.
func validateDocument(doc *catalogimport.Document, userID uint64) error {
	var details []shared.FieldError
	collect := func(err error, path string) {
		if err == nil {
			return
		}
		var de *shared.DomainError
		if errors.As(atPath(err, path), &de) {
			details = append(details, de.Details...)
		}
	}

	_, err := catalog.NewShop(doc.Shop, userID)
	collect(err, "")
	for i, c := range doc.Categories {
		_, err := catalog.NewCategory(c.Name)
		collect(err, fmt.Sprintf("categories[%d]", i))
	}
	for i, item := range doc.Items {
		path := fmt.Sprintf("items[%d]", i)
		// any non-zero category id passes the product rules here
		_, err := catalog.NewProduct(item.Name, 1)
		collect(err, path)
		collect(catalog.Listing{Price: item.Price, PriceRRC: item.PriceRRC, Quantity: item.Quantity}.Validate(), path)
		for _, p := range item.Parameters {
			_, err := catalog.NewParameter(p.Name)
			collect(err, path)
			if len(p.Value) > maxParameterValue {
				details = append(details, shared.FieldError{
					Field:   path + ".parameters." + p.Name,
					Message: fmt.Sprintf("Parameter value cannot exceed %d characters", maxParameterValue),
				})
			}
		}
	}

	if len(details) > 0 {
		return shared.ErrValidation.WithDetails(details...)
	}
	return nil
}

// atPath prefixes the field names of a validation error with a document path
func atPath(err error, path string) error {
	var de *shared.DomainError
	if path == "" || !errors.As(err, &de) || len(de.Details) == 0 {
		return err
	}
	details := make([]shared.FieldError, len(de.Details))
	for i, d := range de.Details {
		details[i] = shared.FieldError{Field: path + "." + d.Field, Message: d.Message}
	}
	return (&shared.DomainError{Code: de.Code, Message: de.Message}).WithDetails(details...)
}
