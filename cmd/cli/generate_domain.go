package main

// Command: generate_domain.go
//
// Description:
// This CLI command helps automate the creation of a new domain/module within the application
// by generating a directory structure and boilerplate files for a Go domain: repository.go,
// service.go, controller.go, and dto.go. It prompts the user for a domain name, then generates
// the relevant files with appropriate templates, placing them in domain/<domain>.
//
// Usage:
//   make generate-domain
//   # Then follow the prompt to enter your domain name.

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const domainDir = "domain/"

func GenerateDomain() {
	fmt.Println("Enter the name of your domain please: ")
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Scan()

	domainName := strings.TrimSpace(scanner.Text())

	if domainName == "" {
		fmt.Println("unable to create domain, invalid input")
		return
	}

	domainPath := filepath.Join(domainDir, domainName)

	if _, err := os.Stat(domainPath); !os.IsNotExist(err) {
		fmt.Println("Error: Domain already exists. Ignoring creation.")
		return
	}

	if err := os.MkdirAll(domainPath, os.ModePerm); err != nil {
		fmt.Println("Error creating domain: ", err)
		return
	}

	files := map[string]string{
		"repository.go": repoTemplate(domainName),
		"service.go":    serviceTemplate(domainName),
		"controller.go": controllerTemplate(domainName),
		"dto.go":        dtoTemplate(domainName),
	}

	for filename, content := range files {
		filepath := filepath.Join(domainPath, filename)
		if err := os.WriteFile(filepath, []byte(content), 0644); err != nil {
			fmt.Println("Error creating file:", err)
		}
	}

	fmt.Println("✅ Domain", domainName, "created successfully!")
	title := cases.Title(language.English).String(domainName)
	fmt.Println("  ===> Next steps:")
	fmt.Println("   1) Create the database model in internal/models/")
	fmt.Printf("      type %s struct {\n", title)
	fmt.Println("          gorm.Model")
	fmt.Println("          // Add your fields here")
	fmt.Println("      }")
	fmt.Println("   2) Register the model in internal/models/main.go ModelRegistry")
	fmt.Println("   3) Implement repository, service, and handlers in the generated files")
	fmt.Println("   4) Register the domain controller in domain/main.go's SetupCoreDomain function:")
	fmt.Printf("      appConfig.RouterService.MountController(%s.New%sController(appConfig.DB, appConfig.Logger))\n", domainName, title)
}

func repoTemplate(domain string) string {
	title := cases.Title(language.English).String(domain)
	lower := parseText(domain, false)
	return fmt.Sprintf(`package %[1]s

import (
	"context"
	"errors"

	"github.com/storytimehq/storytime-api/internal/models"
	apperrors "github.com/storytimehq/storytime-api/pkg/errors"
	"gorm.io/gorm"
)

// %[2]sRepository defines the data access layer for the %[1]s domain
type %[2]sRepository interface {
	// Create persists a new %[1]s entry to the database
	Create(ctx context.Context, entry *models.%[2]s) (*models.%[2]s, error)
	// FindByID retrieves a %[1]s entry by its unique ID
	FindByID(ctx context.Context, id uint) (*models.%[2]s, error)
}

type %[3]sRepository struct {
	db *gorm.DB
}

// New%[2]sRepository creates a new instance of %[2]sRepository
func New%[2]sRepository(db *gorm.DB) %[2]sRepository {
	return &%[3]sRepository{db: db}
}

func (r *%[3]sRepository) Create(ctx context.Context, entry *models.%[2]s) (*models.%[2]s, error) {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, apperrors.NewConflictError("%[1]s entry already exists", err)
		}
		return nil, apperrors.NewDatabaseError("unable to create %[1]s entry", err)
	}
	return entry, nil
}

func (r *%[3]sRepository) FindByID(ctx context.Context, id uint) (*models.%[2]s, error) {
	var entry models.%[2]s
	if err := r.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("%[1]s entry not found", err)
		}
		return nil, apperrors.NewDatabaseError("failed to fetch %[1]s entry", err)
	}
	return &entry, nil
}

// isDuplicateKey checks if the error is a duplicate key constraint violation
func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || apperrors.IsDuplicateKeyError(err)
}
`, domain, title, lower)
}

func serviceTemplate(domain string) string {
	title := cases.Title(language.English).String(domain)
	lower := parseText(domain, false)
	return fmt.Sprintf(`package %[1]s

import (
	"context"

	"github.com/storytimehq/storytime-api/internal/log"
	apperrors "github.com/storytimehq/storytime-api/pkg/errors"
)

// %[2]sService defines the business logic layer for the %[1]s domain
type %[2]sService interface {
	// Create creates a new %[1]s entry based on the provided request
	Create(ctx context.Context, req *Create%[2]sRequest) (*%[2]sResponse, error)

	// FindByID retrieves a %[1]s entry by its unique ID
	FindByID(ctx context.Context, id uint) (*%[2]sResponse, error)
}

type %[3]sService struct {
	logger     *log.Logger
	repository %[2]sRepository
}

func New%[2]sService(logger *log.Logger, repository %[2]sRepository) %[2]sService {
	return &%[3]sService{
		logger:     logger,
		repository: repository,
	}
}

func (s *%[3]sService) Create(ctx context.Context, req *Create%[2]sRequest) (*%[2]sResponse, error) {
	logger := log.FromContext(ctx, s.logger)

	if req == nil {
		logger.Error("Create received empty request")
		return nil, apperrors.NewInvalidRequestError("request cannot be nil", nil)
	}

	// Add business validation logic here

	model := To%[2]sModel(req)
	entry, err := s.repository.Create(ctx, model)
	if err != nil {
		logger.Error("Failed to create %[1]s entry", "error", err)
		return nil, err
	}

	response := To%[2]sResponse(entry)
	return &response, nil
}

func (s *%[3]sService) FindByID(ctx context.Context, id uint) (*%[2]sResponse, error) {
	logger := log.FromContext(ctx, s.logger)

	if id == 0 {
		logger.Error("FindByID received invalid ID")
		return nil, apperrors.NewInvalidRequestError("invalid entry ID", nil)
	}

	entry, err := s.repository.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to find %[1]s entry", "id", id, "error", err)
		return nil, err
	}

	response := To%[2]sResponse(entry)
	return &response, nil
}
`, domain, title, lower)
}

func controllerTemplate(domain string) string {
	title := cases.Title(language.English).String(domain)
	return fmt.Sprintf(`package %[1]s

import (
	"github.com/storytimehq/storytime-api/config/router"
	"github.com/storytimehq/storytime-api/internal/log"
	apperrors "github.com/storytimehq/storytime-api/pkg/errors"
	"gorm.io/gorm"
)

// New%[2]sController creates and returns a versioned RESTController for the %[1]s domain
func New%[2]sController(db *gorm.DB, logger *log.Logger) *router.RESTController {
	return router.NewVersionedRESTController(
		"%[2]sController",
		"v1",
		"/%[1]s",
		func(rs *router.RouterService, c *router.RESTController) {
			repository := New%[2]sRepository(db)
			service := New%[2]sService(logger, repository)

			// Register handlers
			rs.AddPostHandler(c, nil, "", createHandler(service))
			rs.AddGetHandler(c, nil, ":id", getByIDHandler(service))
		},
	)
}

func createHandler(service %[2]sService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		var req Create%[2]sRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			logger.Error("Failed to bind request", "error", err)

			validationErrors := apperrors.FormatValidationErrors(err, &req)
			if len(validationErrors) > 0 {
				return router.BadRequestResult("Invalid request payload", validationErrors)
			}

			return router.BadRequestResult("Invalid request body", apperrors.ErrorTypeInvalidRequest)
		}

		response, err := service.Create(ctx.Request.Context(), &req)
		if err != nil {
			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
				apperrors.ErrorDetail(err),
			)
		}

		return router.CreatedResult(response, "%[2]s entry created successfully")
	}
}

func getByIDHandler(service %[2]sService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		id, errResult := router.ParseIDParam(ctx, "id")
		if errResult != nil {
			return errResult
		}

		response, err := service.FindByID(ctx.Request.Context(), id)
		if err != nil {
			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
				apperrors.ErrorDetail(err),
			)
		}

		return router.OKResult(response, "%[2]s entry retrieved successfully")
	}
}
`, domain, title)
}

func dtoTemplate(domain string) string {
	title := cases.Title(language.English).String(domain)
	return fmt.Sprintf(`package %[1]s

import (
	"github.com/storytimehq/storytime-api/internal/models"
	"github.com/storytimehq/storytime-api/pkg/constants"
)

// Create%[2]sRequest defines the structure for creating a new %[1]s entry
type Create%[2]sRequest struct {
	// Add your request fields here with validation tags
	// Example: Name string `+"`json:\"name\" binding:\"required\"`"+`
}

// %[2]sResponse defines the structure for %[1]s responses
type %[2]sResponse struct {
	ID        uint   `+"`json:\"id\"`"+`
	CreatedAt string `+"`json:\"created_at\"`"+`
	// Add your response fields here
	// Example: Name string `+"`json:\"name\"`"+`
}

// ========================================
// Mappers
// ========================================

// To%[2]sModel converts a Create%[2]sRequest to a models.%[2]s
func To%[2]sModel(req *Create%[2]sRequest) *models.%[2]s {
	if req == nil {
		return nil
	}
	return &models.%[2]s{
		// Map request fields to model fields
		// Example: Name: req.Name,
	}
}

// To%[2]sResponse converts a models.%[2]s to a %[2]sResponse
func To%[2]sResponse(model *models.%[2]s) %[2]sResponse {
	if model == nil {
		return %[2]sResponse{}
	}
	return %[2]sResponse{
		ID:        model.ID,
		CreatedAt: model.CreatedAt.Format(constants.RFC3339DateTimeFormat),
		// Map model fields to response fields
		// Example: Name: model.Name,
	}
}
`, domain, title)
}

func parseText(text string, capitalize bool) string {
	if len(text) == 0 {
		return text
	}

	first := string(text[0])
	rest := text[1:]

	if capitalize {
		return strings.ToUpper(first) + rest
	}
	return strings.ToLower(first) + rest
}
