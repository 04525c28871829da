package repository

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/padelpro/academy/internal/domain/entities"
)

// Storage keys, one JSON array per collection.
const (
	KeyTeachers = "padel:teachers"
	KeyStudents = "padel:students"
	KeyEvents   = "padel:events"
	KeyBookings = "padel:bookings"
	KeyMessages = "padel:messages"
	KeyBlogs    = "padel:blogs"
	KeyUsers    = "padel:users"
	KeySession  = "padel:current-user"
)

// CollectionKeys lists every collection key; the maintenance reset wipes all
// of them (the session key is cleared separately by logout).
var CollectionKeys = []string{
	KeyTeachers, KeyStudents, KeyEvents, KeyBookings, KeyMessages, KeyBlogs, KeyUsers,
}

// Seed records written the first time each key is observed empty, so the
// site is never blank on first load. The content is sample data only.

func daysAgo(n int) string {
	return time.Now().UTC().AddDate(0, 0, -n).Format(time.RFC3339)
}

func seedTeachers() []entities.Teacher {
	return []entities.Teacher{
		{
			ID:          "teacher-1",
			Name:        "Carlos Rodríguez",
			Image:       "/tennis-coach.png",
			Role:        "Entrenador Principal",
			Specialties: []string{"Técnica avanzada", "Estrategia de juego", "Preparación física"},
			Experience:  "15 años",
			Rating:      5,
			Bio:         "Ex jugador profesional con múltiples títulos nacionales. Carlos se especializa en llevar a jugadores de nivel intermedio a avanzado con un enfoque en la técnica y estrategia de juego.",
			Email:       "carlos@padelpro.com",
			Phone:       "612345678",
			CreatedAt:   daysAgo(0),
		},
		{
			ID:          "teacher-2",
			Name:        "Ana Martínez",
			Image:       "/female-coach.png",
			Role:        "Entrenadora",
			Specialties: []string{"Iniciación", "Técnica básica", "Clases para niños"},
			Experience:  "8 años",
			Rating:      4.9,
			Bio:         "Ana tiene un don especial para trabajar con principiantes y niños. Su paciencia y metodología hacen que aprender pádel sea divertido y efectivo para todas las edades.",
			Email:       "ana@padelpro.com",
			Phone:       "623456789",
			CreatedAt:   daysAgo(0),
		},
	}
}

func seedStudents() []entities.Student {
	return []entities.Student{
		{
			ID:            "student-1",
			Name:          "Pedro Sánchez",
			Email:         "pedro@example.com",
			Phone:         "612345678",
			BirthDate:     "1990-05-15",
			Level:         entities.StudentLevelIntermediate,
			Experience:    "1-3-years",
			PreferredDays: []string{"Lunes", "Miércoles"},
			PreferredTime: "Tarde",
			Status:        entities.StudentStatusApproved,
			CreatedAt:     daysAgo(30),
		},
		{
			ID:            "student-2",
			Name:          "María López",
			Email:         "maria@example.com",
			Phone:         "623456789",
			BirthDate:     "1985-08-22",
			Level:         entities.StudentLevelBeginner,
			Experience:    "less-than-year",
			PreferredDays: []string{"Martes", "Jueves"},
			PreferredTime: "Mañana",
			Status:        entities.StudentStatusPending,
			CreatedAt:     daysAgo(15),
		},
		{
			ID:            "student-3",
			Name:          "Carlos Gómez",
			Email:         "carlos@example.com",
			Phone:         "634567890",
			BirthDate:     "1992-11-10",
			Level:         entities.StudentLevelAdvanced,
			Experience:    "more-than-3-years",
			PreferredDays: []string{"Sábado", "Domingo"},
			PreferredTime: "Mañana",
			Status:        entities.StudentStatusPending,
			CreatedAt:     daysAgo(5),
		},
	}
}

func seedEvents() []entities.Event {
	return []entities.Event{
		{
			ID:                   "event-1",
			Title:                "Torneo de Primavera",
			Image:                "/images/torneo1.png",
			Date:                 "15 de Mayo, 2023",
			Time:                 "09:00 - 18:00",
			Location:             "PádelPro Academy",
			Type:                 entities.EventTypeTournament,
			Category:             "Mixto - Todas las categorías",
			Participants:         "32 parejas",
			Price:                "40€ por pareja",
			Description:          "Nuestro tradicional torneo de primavera con categorías para todos los niveles. Incluye comida, bebida y premios para los ganadores.",
			RegistrationDeadline: "10 de Mayo, 2023",
			Registrations:        []string{},
			CreatedAt:            daysAgo(20),
		},
		{
			ID:                   "event-2",
			Title:                "Clinic de Técnica Avanzada",
			Image:                "/images/torneo2.png",
			Date:                 "22 de Mayo, 2023",
			Time:                 "10:00 - 13:00",
			Location:             "PádelPro Academy",
			Type:                 entities.EventTypeClinic,
			Category:             "Nivel Intermedio-Avanzado",
			Participants:         "16 personas máximo",
			Price:                "45€ por persona",
			Description:          "Clinic especializado en técnicas avanzadas de remate y volea. Impartido por nuestro entrenador principal Carlos Rodríguez.",
			RegistrationDeadline: "20 de Mayo, 2023",
			Registrations:        []string{},
			CreatedAt:            daysAgo(10),
		},
	}
}

func seedBookings() []entities.Booking {
	return []entities.Booking{
		{
			ID:          "booking-1",
			StudentID:   "student-1",
			StudentName: "Pedro Sánchez",
			TeacherID:   "teacher-1",
			TeacherName: "Carlos Rodríguez",
			Date:        "15 de Mayo, 2023",
			Time:        "10:00 - 11:00",
			Court:       "Pista 1",
			Type:        entities.BookingTypeIndividual,
			Status:      entities.BookingStatusConfirmed,
			CreatedAt:   daysAgo(5),
		},
		{
			ID:          "booking-2",
			StudentID:   "student-2",
			StudentName: "María López",
			TeacherID:   "teacher-2",
			TeacherName: "Ana Martínez",
			Date:        "16 de Mayo, 2023",
			Time:        "17:00 - 18:00",
			Court:       "Pista 2",
			Type:        entities.BookingTypeGroup,
			Status:      entities.BookingStatusPending,
			CreatedAt:   daysAgo(2),
		},
	}
}

func seedMessages() []entities.ContactMessage {
	return []entities.ContactMessage{
		{
			ID:        "message-1",
			Name:      "Juan Pérez",
			Email:     "juan@example.com",
			Phone:     "612345678",
			Subject:   "info",
			Message:   "Me gustaría recibir más información sobre las clases para principiantes.",
			Read:      true,
			Replied:   false,
			CreatedAt: daysAgo(3),
		},
		{
			ID:        "message-2",
			Name:      "Laura García",
			Email:     "laura@example.com",
			Phone:     "623456789",
			Subject:   "events",
			Message:   "¿Cuándo será el próximo torneo? Me gustaría participar.",
			Read:      false,
			Replied:   false,
			CreatedAt: daysAgo(1),
		},
	}
}

func seedBlogs() []entities.BlogPost {
	return []entities.BlogPost{
		{
			ID:      "blog-1",
			Title:   "Mejora tu técnica de revés",
			Excerpt: "Consejos prácticos para perfeccionar uno de los golpes más importantes en el pádel.",
			Content: "# Mejora tu técnica de revés\n\n" +
				"El revés es uno de los golpes fundamentales en el pádel y dominar su técnica puede marcar una gran diferencia en tu juego.\n\n" +
				"## Posición básica\n\n" +
				"- Colócate de lado, con el hombro izquierdo (para diestros) apuntando hacia la pared.\n" +
				"- Flexiona ligeramente las rodillas para tener mejor equilibrio.\n" +
				"- Sujeta la pala con un agarre continental, que te permitirá mayor control.\n\n" +
				"## Movimiento\n\n" +
				"1. Realiza un ligero giro de cadera y hombros hacia atrás.\n" +
				"2. Lleva la pala hacia atrás, manteniendo la muñeca firme.\n" +
				"3. Golpea la bola delante del cuerpo, con un movimiento de abajo hacia arriba.\n" +
				"4. Acompaña el golpe con un giro de cadera hacia adelante.\n\n" +
				"Con práctica constante notarás una mejora significativa en tu revés.",
			Author:    "Carlos Rodríguez",
			Date:      "5 de Junio, 2023",
			Image:     "/images/blog1.png",
			Published: true,
		},
		{
			ID:      "blog-2",
			Title:   "Preparación física específica",
			Excerpt: "Ejercicios diseñados para mejorar tu rendimiento en la pista de pádel.",
			Content: "# Preparación física específica para pádel\n\n" +
				"Una buena preparación física es fundamental para rendir al máximo en la pista y prevenir lesiones.\n\n" +
				"## Ejercicios de resistencia\n\n" +
				"- Intervalos de alta intensidad (HIIT): 30 segundos de sprint seguidos de 30 segundos de descanso.\n" +
				"- Carrera continua: 20-30 minutos a ritmo moderado, 2-3 veces por semana.\n\n" +
				"## Ejercicios de fuerza\n\n" +
				"1. Sentadillas: 3 series de 12-15 repeticiones.\n" +
				"2. Zancadas: 3 series de 10 repeticiones por pierna.\n" +
				"3. Plancha: mantén la posición durante 30-60 segundos, 3 series.\n\n" +
				"Incorpora estos ejercicios a tu rutina y notarás la mejora en la pista.",
			Author:    "Laura Martínez",
			Date:      "2 de Junio, 2023",
			Image:     "/images/blog2.png",
			Published: true,
		},
		{
			ID:      "blog-3",
			Title:   "Guía de compra: Palas 2023",
			Excerpt: "Análisis de las mejores palas del mercado para cada tipo de jugador.",
			Content: "# Guía de compra: Las mejores palas de pádel 2023\n\n" +
				"Elegir la pala adecuada puede marcar una gran diferencia en tu juego.\n\n" +
				"## Tipos de palas según forma\n\n" +
				"- **Redondas**: mayor punto dulce y control; recomendadas para principiantes.\n" +
				"- **Diamante**: mayor potencia; para jugadores avanzados con buena técnica.\n" +
				"- **Lágrima**: equilibrio entre control y potencia; nivel medio-avanzado.\n\n" +
				"## Peso y balance\n\n" +
				"- Palas ligeras (350-370g): mayor manejabilidad.\n" +
				"- Palas pesadas (370-390g): mayor potencia.\n\n" +
				"Lo más importante es probar la pala antes de comprarla para asegurarte de que se adapta a tu estilo de juego.",
			Author:    "Javier López",
			Date:      "28 de Mayo, 2023",
			Image:     "/images/blog3.png",
			Published: true,
		},
	}
}

// seedUsers hashes the development passwords at seed-construction time so
// no plaintext or precomputed hash lives in the stored data.
func seedUsers() []entities.User {
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		// bcrypt only fails on invalid cost; the constant above is valid.
		panic(err)
	}
	return []entities.User{
		{
			ID:           "admin-1",
			Name:         "Héctor Administrador",
			Email:        "hector@padelpro.com",
			PasswordHash: string(hash),
			Role:         entities.UserRoleAdmin,
			CreatedAt:    daysAgo(0),
		},
		{
			ID:           "admin-2",
			Name:         "Admin Principal",
			Email:        "admin@padelpro.com",
			PasswordHash: string(hash),
			Role:         entities.UserRoleAdmin,
			CreatedAt:    daysAgo(0),
		},
	}
}
