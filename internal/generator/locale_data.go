package generator

// DefaultLocales returns the five supported countries in generation order:
// Germany, France, Italy, Spain, Portugal.
func DefaultLocales() *Locales {
	l, err := NewLocales(germany(), france(), italy(), spain(), portugal())
	if err != nil {
		// the built-in table has unique names and prefixes
		panic(err)
	}
	return l
}

func germany() *Locale {
	return &Locale{
		Country: "Germany",
		ISOCode: "DE",
		Tag:     "de_DE",
		firstNames: []string{
			"Jürgen", "Anna", "Lukas", "Sabine", "Matthias", "Katrin", "Jörg", "Ursula", "Felix", "Heike",
		},
		lastNames: []string{
			"Müller", "Schmidt", "Schneider", "Fischer", "Weber", "Meyer", "Wagner", "Becker", "Schäfer", "Koch",
		},
		streets: []string{
			"Hauptstraße", "Bahnhofstraße", "Gartenweg", "Schillerstraße", "Goethestraße", "Lindenallee", "Am Markt",
		},
		addressFmt: "{street} {number}",
		cities: []string{
			"Berlin", "Hamburg", "München", "Köln", "Frankfurt am Main", "Stuttgart", "Düsseldorf", "Leipzig",
		},
		states: []string{
			"Bayern", "Berlin", "Hamburg", "Hessen", "Nordrhein-Westfalen", "Sachsen", "Baden-Württemberg", "Niedersachsen",
		},
		postcodeFmt: "#####",
		phoneFmt:    "+49 (0) ### #######",
		mailDomains: []string{"web.de", "gmx.de", "t-online.de", "posteo.de"},
		words: []string{
			"überweisung", "miete", "rechnung", "gehalt", "einkauf", "lastschrift", "versicherung", "strom",
			"monat", "zahlung", "konto", "gutschrift", "rückerstattung", "abbuchung", "dauerauftrag", "bargeld",
		},
	}
}

func france() *Locale {
	return &Locale{
		Country: "France",
		ISOCode: "FR",
		Tag:     "fr_FR",
		firstNames: []string{
			"Élodie", "Jean", "Camille", "François", "Hélène", "Nicolas", "Margaux", "Thierry", "Chloé", "Sébastien",
		},
		lastNames: []string{
			"Martin", "Bernard", "Dubois", "Thomas", "Robert", "Richard", "Petit", "Durand", "Lefèvre", "Moreau",
		},
		streets: []string{
			"rue de la Paix", "avenue Victor Hugo", "boulevard Voltaire", "rue Nationale", "place de la République", "rue des Lilas",
		},
		addressFmt: "{number}, {street}",
		cities: []string{
			"Paris", "Marseille", "Lyon", "Toulouse", "Nice", "Nantes", "Strasbourg", "Bordeaux",
		},
		states: []string{
			"Île-de-France", "Provence-Alpes-Côte d'Azur", "Auvergne-Rhône-Alpes", "Occitanie", "Grand Est", "Nouvelle-Aquitaine", "Bretagne",
		},
		postcodeFmt: "#####",
		phoneFmt:    "+33 # ## ## ## ##",
		mailDomains: []string{"orange.fr", "free.fr", "laposte.net", "sfr.fr"},
		words: []string{
			"virement", "loyer", "facture", "salaire", "achat", "prélèvement", "assurance", "électricité",
			"mois", "paiement", "compte", "remboursement", "retrait", "espèces", "abonnement", "carte",
		},
	}
}

func italy() *Locale {
	return &Locale{
		Country: "Italy",
		ISOCode: "IT",
		Tag:     "it_IT",
		firstNames: []string{
			"Giuseppe", "Maria", "Luca", "Francesca", "Niccolò", "Giulia", "Matteo", "Chiara", "Lorenzo", "Alessia",
		},
		lastNames: []string{
			"Rossi", "Russo", "Ferrari", "Esposito", "Bianchi", "Romano", "Colombo", "Ricci", "Marino", "Greco",
		},
		streets: []string{
			"Via Roma", "Via Garibaldi", "Corso Italia", "Via Mazzini", "Piazza Duomo", "Via Dante", "Viale dei Mille",
		},
		addressFmt: "{street} {number}",
		cities: []string{
			"Roma", "Milano", "Napoli", "Torino", "Palermo", "Genova", "Bologna", "Firenze",
		},
		states: []string{
			"Lazio", "Lombardia", "Campania", "Piemonte", "Sicilia", "Liguria", "Emilia-Romagna", "Toscana",
		},
		postcodeFmt: "#####",
		phoneFmt:    "+39 ### #######",
		mailDomains: []string{"libero.it", "virgilio.it", "tiscali.it", "alice.it"},
		words: []string{
			"bonifico", "affitto", "fattura", "stipendio", "acquisto", "addebito", "assicurazione", "bolletta",
			"mese", "pagamento", "conto", "rimborso", "prelievo", "contanti", "abbonamento", "carta",
		},
	}
}

func spain() *Locale {
	return &Locale{
		Country: "Spain",
		ISOCode: "ES",
		Tag:     "es_ES",
		firstNames: []string{
			"José", "María", "Javier", "Lucía", "Sergio", "Carmen", "Álvaro", "Marta", "Pablo", "Inés",
		},
		lastNames: []string{
			"García", "Fernández", "González", "Rodríguez", "López", "Martínez", "Sánchez", "Pérez", "Gómez", "Núñez",
		},
		streets: []string{
			"Calle Mayor", "Avenida de la Constitución", "Calle Real", "Paseo del Prado", "Calle del Sol", "Plaza de España",
		},
		addressFmt: "{street}, {number}",
		cities: []string{
			"Madrid", "Barcelona", "Valencia", "Sevilla", "Zaragoza", "Málaga", "Bilbao", "Alicante",
		},
		states: []string{
			"Madrid", "Cataluña", "Comunidad Valenciana", "Andalucía", "Aragón", "País Vasco", "Galicia", "Castilla y León",
		},
		postcodeFmt: "#####",
		phoneFmt:    "+34 ### ### ###",
		mailDomains: []string{"telefonica.es", "gmail.es", "yahoo.es", "hotmail.es"},
		words: []string{
			"transferencia", "alquiler", "factura", "nómina", "compra", "recibo", "seguro", "luz",
			"mes", "pago", "cuenta", "reembolso", "retirada", "efectivo", "suscripción", "tarjeta",
		},
	}
}

func portugal() *Locale {
	return &Locale{
		Country: "Portugal",
		ISOCode: "PT",
		Tag:     "pt_PT",
		firstNames: []string{
			"João", "Ana", "Tiago", "Inês", "Gonçalo", "Beatriz", "Rui", "Mariana", "Duarte", "Leonor",
		},
		lastNames: []string{
			"Silva", "Santos", "Ferreira", "Pereira", "Oliveira", "Costa", "Rodrigues", "Martins", "Sousa", "Gonçalves",
		},
		streets: []string{
			"Rua Augusta", "Avenida da Liberdade", "Rua do Carmo", "Praça do Comércio", "Rua de Santa Catarina", "Travessa do Fala-Só",
		},
		addressFmt: "{street}, {number}",
		cities: []string{
			"Lisboa", "Porto", "Braga", "Coimbra", "Funchal", "Aveiro", "Faro", "Évora",
		},
		states: []string{
			"Lisboa", "Porto", "Braga", "Coimbra", "Madeira", "Aveiro", "Faro", "Évora",
		},
		postcodeFmt: "####-###",
		phoneFmt:    "+351 ### ### ###",
		mailDomains: []string{"sapo.pt", "clix.pt", "netcabo.pt", "iol.pt"},
		words: []string{
			"transferência", "renda", "fatura", "salário", "compra", "débito", "seguro", "eletricidade",
			"mês", "pagamento", "conta", "reembolso", "levantamento", "numerário", "assinatura", "cartão",
		},
	}
}
