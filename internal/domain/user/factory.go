package user

import "math/rand/v2"

const (
	minRandomAge = 18
	maxRandomAge = 80
)

var firstNames = []string{
	"Juan", "María", "Carlos", "Ana", "Luis", "Laura", "Pedro", "Sofía",
	"José", "Elena", "Miguel", "Isabel", "David", "Carmen", "Javier", "Rosa",
	"Daniel", "Patricia", "Francisco", "Lucía", "Antonio", "Teresa", "Manuel", "Eva",
	"Jorge", "Marta", "Pablo", "Cristina", "Alberto", "Silvia", "Fernando", "Raquel",
}

var lastNames = []string{
	"García", "Rodríguez", "González", "Fernández", "López", "Martínez", "Sánchez",
	"Pérez", "Gómez", "Martín", "Jiménez", "Ruiz", "Hernández", "Díaz", "Moreno",
	"Álvarez", "Romero", "Alonso", "Gutiérrez", "Navarro", "Torres", "Domínguez",
	"Vázquez", "Ramos", "Gil", "Ramírez", "Serrano", "Blanco", "Molina", "Morales",
}

// NewRandomRequest samples one user from the fixed name pools, age in [18,80].
func NewRandomRequest() CreateUserRequest {
	return CreateUserRequest{
		FirstName: firstNames[rand.IntN(len(firstNames))],
		LastName:  lastNames[rand.IntN(len(lastNames))],
		Age:       minRandomAge + rand.IntN(maxRandomAge-minRandomAge+1),
	}
}
