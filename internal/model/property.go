package model

import "time"

// PropertyType is the kind of real estate
type PropertyType string

const (
	TypeHouse     PropertyType = "casa"
	TypeApartment PropertyType = "departamento"
	TypeStore     PropertyType = "local"
	TypeLand      PropertyType = "terreno"
	TypeOffice    PropertyType = "oficina"
	TypeCountry   PropertyType = "quinta"
)

// PropertyTypes lists every property type in display order
var PropertyTypes = []PropertyType{TypeHouse, TypeApartment, TypeStore, TypeLand, TypeOffice, TypeCountry}

// Operation is the kind of deal offered for a property
type Operation string

const (
	OperationSale          Operation = "venta"
	OperationRent          Operation = "alquiler"
	OperationShortTermRent Operation = "alquiler-temporal"
)

// Operations lists every operation in display order
var Operations = []Operation{OperationSale, OperationRent, OperationShortTermRent}

// Status is the availability of a property
type Status string

const (
	StatusAvailable Status = "disponible"
	StatusReserved  Status = "reservada"
	StatusSold      Status = "vendida"
	StatusRented    Status = "alquilada"
	StatusInactive  Status = "inactiva"
)

// Coordinates is a geographic position
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Agent is the real-estate agent in charge of a property
type Agent struct {
	ID     int64   `json:"id"`
	Name   string  `json:"nombre"`
	Email  string  `json:"email"`
	Phone  string  `json:"telefono"`
	Avatar *string `json:"avatar,omitempty"`
}

// Property represents a property listing
type Property struct {
	ID          int64        `json:"id" db:"id"`
	Title       string       `json:"titulo" db:"titulo"`
	Description string       `json:"descripcion" db:"descripcion"`
	Price       float64      `json:"precio" db:"precio"`
	Location    string       `json:"ubicacion" db:"ubicacion"`
	Address     *string      `json:"direccion,omitempty" db:"direccion"`
	Type        PropertyType `json:"tipo" db:"tipo"`
	Operation   Operation    `json:"operacion" db:"operacion"`
	Rooms       int          `json:"habitaciones" db:"habitaciones"`
	Bathrooms   int          `json:"banos" db:"banos"`
	Surface     float64      `json:"metros" db:"metros"`
	LandSurface *float64     `json:"metros_terreno,omitempty" db:"metros_terreno"`
	Age         *int         `json:"antiguedad,omitempty" db:"antiguedad"`
	Expenses    *float64     `json:"expensas,omitempty" db:"expensas"`
	Features    JSONArray    `json:"caracteristicas" db:"caracteristicas"`
	Services    JSONArray    `json:"servicios" db:"servicios"`
	Images      JSONArray    `json:"imagenes" db:"imagenes"`
	Coordinates *Coordinates `json:"coordenadas,omitempty" db:"coordenadas"`
	Status      Status       `json:"estado" db:"estado"`
	Featured    bool         `json:"destacada" db:"destacada"`
	PublishedAt time.Time    `json:"fecha_publicacion" db:"fecha_publicacion"`
	UpdatedAt   *time.Time   `json:"fecha_actualizacion,omitempty" db:"fecha_actualizacion"`
	Agent       Agent        `json:"agente" db:"agente"`
	Views       int          `json:"vistas" db:"vistas"`
}

// PropertyInput is the body of create and update requests
type PropertyInput struct {
	Title       string       `json:"titulo" binding:"required,min=10,max=200"`
	Description string       `json:"descripcion" binding:"required,min=50,max=2000"`
	Price       float64      `json:"precio" binding:"required,gt=0"`
	Location    string       `json:"ubicacion" binding:"required,min=5,max=200"`
	Address     *string      `json:"direccion,omitempty" binding:"omitempty,max=300"`
	Type        PropertyType `json:"tipo" binding:"required,oneof=casa departamento local terreno oficina quinta"`
	Operation   Operation    `json:"operacion" binding:"required,oneof=venta alquiler alquiler-temporal"`
	Rooms       int          `json:"habitaciones" binding:"min=0,max=20"`
	Bathrooms   int          `json:"banos" binding:"min=0,max=10"`
	Surface     float64      `json:"metros" binding:"required,gt=0,lte=10000"`
	LandSurface *float64     `json:"metros_terreno,omitempty" binding:"omitempty,gt=0,lte=50000"`
	Age         *int         `json:"antiguedad,omitempty" binding:"omitempty,min=0,max=200"`
	Expenses    *float64     `json:"expensas,omitempty" binding:"omitempty,min=0"`
	Features    []string     `json:"caracteristicas"`
	Services    []string     `json:"servicios"`
	Images      []string     `json:"imagenes"`
	Coordinates *Coordinates `json:"coordenadas,omitempty"`
	AgentID     int64        `json:"agente_id" binding:"required"`
}

// PropertyListResponse represents a paginated property listing
type PropertyListResponse struct {
	Properties []Property `json:"propiedades"`
	Total      int        `json:"total"`
	Page       int        `json:"pagina"`
	Limit      int        `json:"limite"`
	TotalPages int        `json:"total_paginas"`
}

// PropertyStats summarizes the available properties
type PropertyStats struct {
	Total        int            `json:"total_propiedades"`
	ByType       map[string]int `json:"por_tipo"`
	ByOperation  map[string]int `json:"por_operacion"`
	AveragePrice float64        `json:"precio_promedio"`
	Featured     int            `json:"propiedades_destacadas"`
}

// FavoriteResponse is returned when a favorite is toggled
type FavoriteResponse struct {
	Message    string `json:"message"`
	PropertyID int64  `json:"propiedad_id"`
	UserID     string `json:"usuario_id"`
	IsFavorite bool   `json:"es_favorito"`
}
