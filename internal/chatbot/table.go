// Package chatbot implements the support chat: the widget's keyword matcher
// and conversation, and the intent classifier behind the chat API.
package chatbot

import "strings"

// Entry pairs a lowercase keyword with its canned response.
type Entry struct {
	Keyword  string
	Response string
}

// Table is an ordered keyword-response table with a fallback response.
// Lookup order is declaration order, so an input containing several keywords
// resolves to the entry declared first.
type Table struct {
	entries  []Entry
	fallback string
}

// NewTable builds a table. Keywords are lower-cased; empty keywords are
// dropped since they would match every input.
func NewTable(fallback string, entries ...Entry) *Table {
	t := &Table{fallback: fallback, entries: make([]Entry, 0, len(entries))}
	for _, e := range entries {
		kw := strings.ToLower(e.Keyword)
		if kw == "" {
			continue
		}
		t.entries = append(t.entries, Entry{Keyword: kw, Response: e.Response})
	}
	return t
}

// Match returns the response of the first entry whose keyword occurs in the
// lower-cased input, or the fallback.
func (t *Table) Match(input string) string {
	msg := strings.ToLower(input)
	for _, e := range t.entries {
		if strings.Contains(msg, e.Keyword) {
			return e.Response
		}
	}
	return t.fallback
}

// Entries returns a copy of the table in lookup order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Fallback returns the default response.
func (t *Table) Fallback() string { return t.fallback }

// DefaultFallback is the response for input matching no keyword.
const DefaultFallback = "Entiendo tu consulta. Para brindarte la mejor atención, te sugiero que te comuniques directamente con uno de nuestros agentes al +54 341 123-4567 o agenda una cita desde nuestra página."

// DefaultTable returns the site widget's table.
func DefaultTable() *Table {
	return NewTable(DefaultFallback,
		Entry{"hola", "¡Hola! ¿Cómo estás? ¿En qué te puedo ayudar hoy?"},
		Entry{"propiedades", "Tenemos una gran variedad de propiedades disponibles. ¿Buscas algo específico? Puedo ayudarte con casas, departamentos, locales comerciales o terrenos."},
		Entry{"precio", "Los precios varían según la ubicación, tipo y características de la propiedad. ¿Te interesa alguna zona en particular?"},
		Entry{"alquiler", "Manejamos alquileres tradicionales y temporales. ¿Qué tipo de propiedad necesitas y por cuánto tiempo?"},
		Entry{"venta", "¿Estás buscando comprar o vender una propiedad? Puedo orientarte en ambos casos."},
		Entry{"ubicacion", "Trabajamos principalmente en Rosario y zona metropolitana. ¿Hay algún barrio que te interese?"},
		Entry{"contacto", "Puedes contactarnos al +54 341 123-4567 o por email a info@inmomax.com. También puedes agendar una cita desde nuestra página."},
		Entry{"horarios", "Nuestros horarios son: Lunes a Viernes de 9:00 a 18:00, Sábados de 9:00 a 13:00. Los domingos estamos cerrados."},
		Entry{"gracias", "¡De nada! Es un placer ayudarte. ¿Hay algo más en lo que pueda asistirte?"},
		Entry{"adios", "¡Hasta luego! Si necesitas ayuda, no dudes en escribirme. ¡Que tengas un excelente día!"},
	)
}
