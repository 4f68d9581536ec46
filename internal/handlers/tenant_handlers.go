package handlers

import (
	"net/http"

	"petshop2/internal/common"
	"petshop2/internal/models"
	"petshop2/internal/services"
	"petshop2/internal/tenancy"

	"github.com/labstack/echo/v4"
)

const maxLogoSize = 2 * 1024 * 1024 // 2MB

type TenantHandlers struct {
	tenantService  services.TenantService
	storageService services.StorageService
}

func NewTenantHandlers(tenantService services.TenantService, storageService services.StorageService) *TenantHandlers {
	return &TenantHandlers{
		tenantService:  tenantService,
		storageService: storageService,
	}
}

// Register handles POST /tenants/register. Public: this is how a new shop
// signs up.
func (h *TenantHandlers) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req services.RegisterTenantRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Formato de requisição inválido")
	}

	tenant, err := h.tenantService.Register(ctx, &req)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusCreated, tenant)
}

// Current handles GET /tenant. Returns the resolved tenant for this request.
func (h *TenantHandlers) Current(c echo.Context) error {
	tenant, ok := tenancy.TenantFromContext(c.Request().Context())
	if !ok {
		return common.SendTenantNotFound(c)
	}
	return c.JSON(http.StatusOK, tenant)
}

// GetConfig handles GET /tenant/config.
func (h *TenantHandlers) GetConfig(c echo.Context) error {
	tenant, ok := tenancy.TenantFromContext(c.Request().Context())
	if !ok {
		return common.SendTenantNotFound(c)
	}

	cfg := models.TenantConfig{
		Name:       tenant.Name,
		ThemeColor: tenant.ThemeColor,
	}
	if tenant.LogoKey != nil {
		if url, err := h.storageService.LogoURL(tenant.ID, *tenant.LogoKey); err == nil {
			cfg.LogoURL = &url
		}
	}

	return c.JSON(http.StatusOK, cfg)
}

// UpdateConfig handles PUT /tenant/config.
func (h *TenantHandlers) UpdateConfig(c echo.Context) error {
	ctx := c.Request().Context()

	tenant, ok := tenancy.TenantFromContext(ctx)
	if !ok {
		return common.SendTenantNotFound(c)
	}

	var cfg models.TenantConfig
	if err := c.Bind(&cfg); err != nil {
		return common.SendClientError(c, "Formato de requisição inválido")
	}

	updated, err := h.tenantService.UpdateConfig(ctx, tenant.ID, &cfg)
	if err != nil {
		return sendServiceError(c, "Estabelecimento", err)
	}

	return c.JSON(http.StatusOK, updated)
}

// UploadLogo handles POST /tenant/logo.
func (h *TenantHandlers) UploadLogo(c echo.Context) error {
	ctx := c.Request().Context()

	tenant, ok := tenancy.TenantFromContext(ctx)
	if !ok {
		return common.SendTenantNotFound(c)
	}

	file, err := c.FormFile("logo")
	if err != nil {
		return common.SendValidationError(c, "logo", "arquivo de imagem é obrigatório")
	}
	if file.Size > maxLogoSize {
		return common.SendValidationError(c, "logo", "arquivo excede o limite de 2MB")
	}

	src, err := file.Open()
	if err != nil {
		return common.SendServerError(c, "Falha ao ler o arquivo")
	}
	defer src.Close()

	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil {
		return common.SendServerError(c, "Falha ao ler o arquivo")
	}
	contentType := http.DetectContentType(buffer[:n])
	switch contentType {
	case "image/jpeg", "image/png", "image/webp":
	default:
		return common.SendValidationError(c, "logo", "apenas imagens JPEG, PNG ou WebP são aceitas")
	}
	if _, err := src.Seek(0, 0); err != nil {
		return common.SendServerError(c, "Falha ao ler o arquivo")
	}

	objectKey, err := h.storageService.UploadLogo(ctx, tenant.ID, src, file.Size, contentType)
	if err != nil {
		return common.SendServerError(c, "Falha ao enviar o arquivo")
	}

	if tenant.LogoKey != nil {
		// Old logo is replaced, not accumulated
		_ = h.storageService.DeleteLogo(ctx, tenant.ID, *tenant.LogoKey)
	}

	updated, err := h.tenantService.UpdateLogo(ctx, tenant.ID, objectKey)
	if err != nil {
		return sendServiceError(c, "Estabelecimento", err)
	}

	url, err := h.storageService.LogoURL(tenant.ID, objectKey)
	if err != nil {
		return common.SendServerError(c, "Falha ao gerar URL do logo")
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"tenant":   updated,
		"logo_url": url,
	})
}

// AdminGet handles GET /admin/tenants/:id.
func (h *TenantHandlers) AdminGet(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	tenant, err := h.tenantService.GetByID(c.Request().Context(), id)
	if err != nil {
		return sendServiceError(c, "Estabelecimento", err)
	}
	return c.JSON(http.StatusOK, tenant)
}

// AdminList handles GET /admin/tenants.
func (h *TenantHandlers) AdminList(c echo.Context) error {
	limit, offset := parsePagination(c)

	tenants, err := h.tenantService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return common.SendServerError(c, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"tenants": tenants,
		"limit":   limit,
		"offset":  offset,
	})
}

// AdminUpdate handles PUT /admin/tenants/:id.
func (h *TenantHandlers) AdminUpdate(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req services.UpdateTenantRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Formato de requisição inválido")
	}
	req.ID = id

	tenant, err := h.tenantService.Update(c.Request().Context(), &req)
	if err != nil {
		return sendServiceError(c, "Estabelecimento", err)
	}
	return c.JSON(http.StatusOK, tenant)
}

// AdminDelete handles DELETE /admin/tenants/:id.
func (h *TenantHandlers) AdminDelete(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.tenantService.Delete(c.Request().Context(), id); err != nil {
		return sendServiceError(c, "Estabelecimento", err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Estabelecimento removido"})
}
