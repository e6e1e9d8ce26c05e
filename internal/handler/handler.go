package handler

import (
	"errors"
	"net/http"

	"grocery/internal/metrics"
	"grocery/internal/model"
	"grocery/internal/service"
	"grocery/internal/token"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler структурирует зависимости сервисов для обработки HTTP-запросов.
type Handler struct {
	AuthService    *service.AuthService
	ItemService    *service.ItemService
	BookingService *service.BookingService

	tokens *token.Manager
	log    *zap.Logger
}

// NewHandler создает новый Handler с внедрением зависимостей (сервисов).
func NewHandler(as *service.AuthService, is *service.ItemService, bs *service.BookingService,
	tokens *token.Manager, log *zap.Logger) *Handler {
	return &Handler{
		AuthService:    as,
		ItemService:    is,
		BookingService: bs,
		tokens:         tokens,
		log:            log,
	}
}

// RegisterRoutes регистрирует все маршруты API.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.POST("/register", h.Register)
	router.POST("/login", h.Login)

	router.GET("/get-items", h.AuthenticateToken, h.GetItems)
	router.POST("/book-items", h.AuthenticateToken, h.BookItems)

	router.POST("/add-item", h.AuthenticateToken, h.IsAdmin, h.AddItem)
	router.POST("/update-item", h.AuthenticateToken, h.IsAdmin, h.UpdateItem)
	router.POST("/delete-item", h.AuthenticateToken, h.IsAdmin, h.DeleteItem)
	router.POST("/update-item-quantity", h.AuthenticateToken, h.IsAdmin, h.UpdateItemQuantity)
}

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	IsAdmin   bool   `json:"isAdmin"`
}

// Register обработчик для POST /register - регистрирует нового пользователя и выдает токен.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "First name, last name, email, and password are required"})
		return
	}
	user, signed, err := h.AuthService.Register(req.FirstName, req.LastName, req.Email, req.Password, req.IsAdmin)
	if err != nil {
		// Сюда же попадает нарушение уникальности email
		h.log.Error("ошибка при регистрации пользователя", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "User registered successfully",
		"id":      user.ID,
		"token":   signed,
		"isAdmin": user.IsAdmin,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login обработчик для POST /login - проверяет учетные данные и выдает токен.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}
	user, signed, err := h.AuthService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email or password"})
			return
		}
		h.log.Error("ошибка при входе пользователя", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   signed,
		"isAdmin": user.IsAdmin,
	})
}

// GetItems обработчик для GET /get-items - возвращает список всех товаров.
func (h *Handler) GetItems(c *gin.Context) {
	items, err := h.ItemService.ListItems(c.Request.Context())
	if err != nil {
		h.log.Error("ошибка при получении товаров", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	c.JSON(http.StatusOK, items)
}

type addItemRequest struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
}

// AddItem обработчик для POST /add-item - добавляет товар в каталог (только администратор).
func (h *Handler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		req.Name == "" || req.Price == 0 || req.Description == "" || req.Quantity == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, price, description, and quantity are required"})
		return
	}
	item := &model.Item{Name: req.Name, Price: req.Price, Description: req.Description, Quantity: req.Quantity}
	id, err := h.ItemService.CreateItem(c.Request.Context(), item)
	if err != nil {
		h.log.Error("ошибка при добавлении товара", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item added successfully", "id": id})
}

type updateItemRequest struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
}

// UpdateItem обработчик для POST /update-item - обновляет все поля товара (только администратор).
func (h *Handler) UpdateItem(c *gin.Context) {
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		req.ID == 0 || req.Name == "" || req.Price == 0 || req.Description == "" || req.Quantity == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID, name, price, description, and quantity are required"})
		return
	}
	item := &model.Item{ID: req.ID, Name: req.Name, Price: req.Price, Description: req.Description, Quantity: req.Quantity}
	if err := h.ItemService.UpdateItem(c.Request.Context(), item); err != nil {
		h.log.Error("ошибка при обновлении товара", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item updated successfully"})
}

type deleteItemRequest struct {
	ID int `json:"id"`
}

// DeleteItem обработчик для POST /delete-item - удаляет товар (только администратор).
func (h *Handler) DeleteItem(c *gin.Context) {
	var req deleteItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID is required"})
		return
	}
	if err := h.ItemService.DeleteItem(c.Request.Context(), req.ID); err != nil {
		h.log.Error("ошибка при удалении товара", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}

type updateQuantityRequest struct {
	ID       int `json:"id"`
	Quantity int `json:"quantity"`
}

// UpdateItemQuantity обработчик для POST /update-item-quantity - устанавливает
// новое количество товара (только администратор).
func (h *Handler) UpdateItemQuantity(c *gin.Context) {
	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == 0 || req.Quantity == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID and quantity are required"})
		return
	}
	if err := h.ItemService.UpdateItemQuantity(c.Request.Context(), req.ID, req.Quantity); err != nil {
		h.log.Error("ошибка при обновлении количества товара", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item quantity updated successfully"})
}

type bookItemsRequest struct {
	Items []model.BookingLine `json:"items"`
}

// BookItems обработчик для POST /book-items - атомарно оформляет заказ.
// Идентификатор пользователя берется из claims токена, подменить его телом запроса нельзя.
func (h *Handler) BookItems(c *gin.Context) {
	var req bookItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Items are required and should be an array"})
		return
	}
	claims := currentClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: No token provided"})
		return
	}
	if err := h.BookingService.BookItems(c.Request.Context(), claims.ID, req.Items); err != nil {
		if errors.Is(err, service.ErrNoItems) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Items are required and should be an array"})
			return
		}
		metrics.BookingsTotal.WithLabelValues("failure").Inc()
		h.log.Error("транзакция бронирования завершилась ошибкой", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database transaction failed"})
		return
	}
	metrics.BookingsTotal.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, gin.H{"message": "Items booked and quantities updated successfully"})
}
