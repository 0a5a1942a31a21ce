package chatbot

import (
	"math/rand/v2"
	"regexp"
	"strings"
)

// DefaultIntent is reported when no intent pattern matches.
const DefaultIntent = "default"

// Confidence reported for a matched intent and for the default intent.
const (
	MatchedConfidence = 0.9
	DefaultConfidence = 0.3
)

// Intent is one classifiable topic of the chat API.
type Intent struct {
	Name        string
	Patterns    []*regexp.Regexp
	Responses   []string
	Suggestions []string
}

// Classification is the result of classifying one message.
type Classification struct {
	Intent      string
	Response    string
	Confidence  float64
	Suggestions []string
}

// IntentClassifier maps messages to intents by first-match regexp search.
// Intents are tried in declaration order, patterns in order within an intent.
type IntentClassifier struct {
	intents  []Intent
	fallback Intent
	pick     func(n int) int
}

// NewIntentClassifier builds a classifier. The fallback intent answers
// messages that match nothing; its name is always DefaultIntent.
func NewIntentClassifier(fallback Intent, intents ...Intent) *IntentClassifier {
	fallback.Name = DefaultIntent
	return &IntentClassifier{
		intents:  intents,
		fallback: fallback,
		pick:     rand.IntN,
	}
}

// WithPicker replaces the random response selection. pick(n) must return a
// value in [0, n).
func (c *IntentClassifier) WithPicker(pick func(n int) int) *IntentClassifier {
	c.pick = pick
	return c
}

// Detect returns the name of the first intent with a pattern found in the
// lower-cased message.
func (c *IntentClassifier) Detect(message string) string {
	return c.detect(strings.ToLower(message)).Name
}

func (c *IntentClassifier) detect(msg string) *Intent {
	for i := range c.intents {
		for _, p := range c.intents[i].Patterns {
			if p.MatchString(msg) {
				return &c.intents[i]
			}
		}
	}
	return &c.fallback
}

// Classify detects the intent and picks one of its responses.
func (c *IntentClassifier) Classify(message string) Classification {
	in := c.detect(strings.ToLower(message))

	responses := in.Responses
	if len(responses) == 0 {
		responses = c.fallback.Responses
	}
	var resp string
	if len(responses) > 0 {
		resp = responses[c.pick(len(responses))]
	}

	suggestions := in.Suggestions
	if len(suggestions) == 0 {
		suggestions = c.fallback.Suggestions
	}

	confidence := MatchedConfidence
	if in.Name == DefaultIntent {
		confidence = DefaultConfidence
	}

	return Classification{
		Intent:      in.Name,
		Response:    resp,
		Confidence:  confidence,
		Suggestions: append([]string(nil), suggestions...),
	}
}

// Intents returns the intent names in match order.
func (c *IntentClassifier) Intents() []string {
	names := make([]string, len(c.intents))
	for i, in := range c.intents {
		names[i] = in.Name
	}
	return names
}

func patterns(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

// FAQ is the list of frequent questions offered by the chat API.
var FAQ = []string{
	"¿Qué propiedades tienen disponibles?",
	"¿Cuáles son sus horarios de atención?",
	"¿Cómo puedo contactarlos?",
	"¿En qué zonas trabajan?",
	"¿Ofrecen financiación?",
	"¿Hacen tasaciones?",
	"¿Qué servicios brindan?",
	"¿Tienen propiedades en alquiler temporal?",
}

// Suggestions returns a copy of FAQ.
func Suggestions() []string {
	return append([]string(nil), FAQ...)
}

var defaultSuggestions = []string{
	"¿Puedes contarme más detalles?",
	"¿Te interesa alguna zona en particular?",
	"¿Prefieres hablar con uno de nuestros agentes?",
}

// DefaultClassifier returns the classifier behind the chat API.
func DefaultClassifier() *IntentClassifier {
	fallback := Intent{
		Responses: []string{
			"Entiendo tu consulta. Para una atención más personalizada, te sugiero contactar a uno de nuestros agentes",
			"Para brindarte la mejor información, te recomiendo hablar directamente con nuestro equipo",
			"Tu consulta es muy específica. ¿Te parece si coordinas una llamada con uno de nuestros especialistas?",
		},
		Suggestions: defaultSuggestions,
	}

	return NewIntentClassifier(fallback,
		Intent{
			Name:     "saludo",
			Patterns: patterns(`hola`, `buenos? d[ií]as?`, `buenas? tardes?`, `buenas? noches?`, `saludos`, `qu[eé] tal`, `c[oó]mo est[aá]s?`),
			Responses: []string{
				"¡Hola! Bienvenido a InmoMax. ¿En qué puedo ayudarte hoy?",
				"¡Hola! Soy el asistente virtual de InmoMax. ¿Cómo te puedo ayudar?",
				"¡Hola! ¿Estás buscando alguna propiedad en particular?",
			},
			Suggestions: []string{
				"¿Buscas alguna propiedad en particular?",
				"¿Te interesa comprar o alquilar?",
				"¿En qué zona estás buscando?",
			},
		},
		Intent{
			Name:     "propiedades",
			Patterns: patterns(`propiedades?`, `inmuebles?`, `casas?`, `departamentos?`, `locales?`, `terrenos?`, `quintas?`, `qu[eé] tienen`, `opciones`, `disponibles?`, `catálogo`),
			Responses: []string{
				"Tenemos una gran variedad de propiedades disponibles. ¿Buscas casa, departamento, local comercial o terreno?",
				"Contamos con propiedades en venta y alquiler en toda la zona de Rosario. ¿Qué tipo te interesa?",
				"Manejamos más de 500 propiedades activas. ¿Te interesa alguna zona en particular?",
			},
			Suggestions: []string{
				"¿Qué tipo de propiedad te interesa?",
				"¿Tienes algún presupuesto en mente?",
				"¿Hay alguna zona que prefieras?",
			},
		},
		Intent{
			Name:     "precios",
			Patterns: patterns(`precios?`, `costo`, `valor`, `cu[aá]nto`, `barato`, `caro`, `económico`, `accesible`),
			Responses: []string{
				"Los precios varían según la ubicación, tipo y características. ¿Te interesa alguna zona específica?",
				"Tenemos opciones para todos los presupuestos. ¿Podrías contarme qué rango de precio manejas?",
				"Los precios dependen de muchos factores. ¿Qué tipo de propiedad te interesa y en qué zona?",
			},
			Suggestions: []string{
				"¿Qué tipo de propiedad te interesa?",
				"¿En qué zona estás buscando?",
				"¿Necesitas información sobre financiación?",
			},
		},
		Intent{
			Name:     "alquiler",
			Patterns: patterns(`alquiler`, `alquilar`, `rentar`, `arrendar`, `temporal`, `inquilino`),
			Responses: []string{
				"Manejamos alquileres tradicionales y temporales. ¿Para cuánto tiempo necesitas la propiedad?",
				"Tenemos excelentes opciones en alquiler. ¿Buscas casa o departamento?",
				"Para alquileres trabajamos con garantía propietaria o seguro de caución. ¿Qué modalidad prefieres?",
			},
			Suggestions: []string{
				"¿Para cuánto tiempo necesitas la propiedad?",
				"¿Qué zona prefieres?",
				"¿Tienes garantía propietaria?",
			},
		},
		Intent{
			Name:     "venta",
			Patterns: patterns(`venta`, `vender`, `comprar`, `compra`, `adquirir`, `escriturar`),
			Responses: []string{
				"¿Estás buscando comprar o vender una propiedad?",
				"Para ventas ofrecemos asesoramiento integral. ¿Ya tienes una propiedad en mente?",
				"Contamos con financiación y asesoramiento legal. ¿Qué tipo de propiedad te interesa comprar?",
			},
			Suggestions: []string{
				"¿Ya tienes una propiedad en mente?",
				"¿Necesitas asesoramiento para financiación?",
				"¿Qué zona te interesa?",
			},
		},
		Intent{
			Name:     "ubicacion",
			Patterns: patterns(`ubicaci[oó]n`, `zona`, `barrio`, `d[oó]nde`, `lugar`, `[aá]rea`, `sector`, `rosario`, `centro`, `las lomas`, `fisherton`, `pichincha`, `funes`),
			Responses: []string{
				"Trabajamos en Rosario y zona metropolitana: Las Lomas, Centro, Fisherton, Pichincha, Funes y más.",
				"Cubrimos toda la ciudad de Rosario y alrededores. ¿Hay algún barrio que te interese particularmente?",
				"Tenemos propiedades en las mejores zonas de Rosario. ¿Qué barrio prefieres?",
			},
			Suggestions: []string{
				"¿Qué tipo de propiedad buscas en esa zona?",
				"¿Para compra o alquiler?",
				"¿Tienes algún presupuesto definido?",
			},
		},
		Intent{
			Name:     "contacto",
			Patterns: patterns(`contacto`, `tel[eé]fono`, `llamar`, `comunicar`, `email`, `mail`, `direcci[oó]n`, `whatsapp`),
			Responses: []string{
				"Puedes contactarnos al +54 341 123-4567 o por email a info@inmomax.com",
				"Nuestro teléfono es +54 341 123-4567 y también puedes escribirnos a info@inmomax.com",
				"Para contacto directo: +54 341 123-4567 o agenda una cita desde nuestra web",
			},
			Suggestions: []string{
				"¿Quieres agendar una visita?",
				"¿Prefieres que te llamemos?",
				"¿Hay alguna propiedad específica que te interese?",
			},
		},
		Intent{
			Name:     "horarios",
			Patterns: patterns(`horarios?`, `atienden`, `abren`, `cierran`, `cu[aá]ndo`, `d[ií]as?`, `s[aá]bados?`, `domingos?`),
			Responses: []string{
				"Atendemos de lunes a viernes de 9:00 a 18:00 y sábados de 9:00 a 13:00",
				"Nuestros horarios son: L-V 9:00-18:00, Sábados 9:00-13:00, Domingos cerrado",
				"Estamos disponibles de lunes a viernes todo el día y sábados por la mañana",
			},
		},
		Intent{
			Name:     "servicios",
			Patterns: patterns(`servicios?`, `qu[eé] hacen`, `qu[eé] ofrecen`, `administraci[oó]n`, `gesti[oó]n`),
			Responses: []string{
				"Ofrecemos: compra-venta, alquileres, tasaciones, administración de propiedades y asesoramiento legal",
				"Nuestros servicios incluyen gestión integral inmobiliaria: ventas, alquileres, tasaciones y más",
				"Brindamos asesoramiento completo: desde la búsqueda hasta la escrituración",
			},
		},
		Intent{
			Name:     "financiacion",
			Patterns: patterns(`financiaci[oó]n`, `cr[eé]dito`, `hipoteca`, `banco`, `cuotas`, `financiar`, `uva`, `pr[eé]stamo`),
			Responses: []string{
				"Trabajamos con todos los bancos para créditos hipotecarios. ¿Necesitas info sobre financiación?",
				"Ofrecemos asesoramiento para créditos UVA, tradicionales y planes gubernamentales",
				"Podemos ayudarte con la gestión de créditos hipotecarios. ¿Ya pre-calificaste en algún banco?",
			},
		},
		Intent{
			Name:     "tasacion",
			Patterns: patterns(`tasaci[oó]n`, `tasar`, `avaluar`, `valor`, `cu[aá]nto vale`, `tasador`),
			Responses: []string{
				"Realizamos tasaciones oficiales para compra, venta, sucesiones y trámites bancarios",
				"Nuestras tasaciones están avaladas por el Colegio de Martilleros. ¿Para qué la necesitas?",
				"Hacemos tasaciones en 48-72 horas. El costo varía según el tipo de propiedad",
			},
		},
		Intent{
			Name:     "despedida",
			Patterns: patterns(`gracias`, `chau`, `adi[oó]s`, `hasta luego`, `nos vemos`, `bye`, `hasta pronto`),
			Responses: []string{
				"¡Gracias por contactarte con InmoMax! Espero haberte ayudado",
				"¡Hasta luego! No dudes en escribirme si necesitas más información",
				"¡Que tengas un excelente día! Aquí estaré si necesitas ayuda",
			},
		},
	)
}
