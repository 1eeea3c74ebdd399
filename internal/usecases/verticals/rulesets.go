package verticals

import "regexp"

func healthcareRuleSet() RuleSet {
	drugs := regexp.MustCompile(`(?i)\b(ed|erectile dysfunction|viagra|cialis|sildenafil|tadalafil|prescriptions?|rx|medications?|pills?|opioids?)\b`)

	return RuleSet{
		Vertical:        Healthcare,
		ImperativeVerbs: []string{"buy", "order", "get", "try", "start", "book", "schedule", "call", "see", "talk"},
		IntentVerbs:     []string{"Start", "Book", "Schedule"},
		ForbiddenPairs: []ForbiddenPair{
			{Verb: "buy", ObjectPattern: drugs, Reason: "venda direta de medicamento ou tratamento controlado", Example: "ED treatment"},
			{Verb: "order", ObjectPattern: drugs, Reason: "pedido direto de medicamento controlado", Example: "prescription pills"},
			{Verb: "get", ObjectPattern: drugs, Reason: "oferta direta de medicamento controlado", Example: "viagra"},
		},
		ProblemToSolution: map[string][]string{
			"buy":   {"Start", "Book"},
			"order": {"Book", "Start"},
			"get":   {"Start", "Book"},
		},
		ErrorClaims: []Claim{
			{Pattern: regexp.MustCompile(`(?i)\b(cures?|miracle|guaranteed (results|cure))\b`), Reason: "promessa de cura ou resultado garantido", Suggestion: "Licensed Care"},
			{Pattern: regexp.MustCompile(`(?i)\bno (prescription|rx) (needed|required)\b`), Reason: "dispensa de receita não permitida", Suggestion: "Licensed Providers"},
			{Pattern: regexp.MustCompile(`(?i)\b100% effective\b`), Reason: "eficácia absoluta não comprovável", Suggestion: "Proven Care"},
		},
		WarnClaims: []Claim{
			{Pattern: regexp.MustCompile(`(?i)(#1|\bnumber one\b|\bbest\b|\btop[- ]rated\b)`), Reason: "superlativo sem comprovação", Suggestion: "Trusted"},
			{Pattern: regexp.MustCompile(`(?i)\b(instant|overnight) results?\b`), Reason: "promessa de resultado rápido", Suggestion: "Fast Access"},
		},
		Signals: []string{
			"clinic", "doctor", "physician", "treatment", "telehealth", "telemedicine", "pharmacy",
			"dental", "dentist", "therapy", "medical", "health", "ed", "prescription", "urgent care",
		},
		Categories: []CategoryRule{
			{Name: "ED Treatment", Pattern: regexp.MustCompile(`(?i)\b(ed|erectile)\b`)},
			{Name: "Telehealth", Pattern: regexp.MustCompile(`(?i)\b(tele(health|medicine)|online doctor)\b`)},
			{Name: "Dental Care", Pattern: regexp.MustCompile(`(?i)\bdent(al|ist)`)},
			{Name: "Urgent Care", Pattern: regexp.MustCompile(`(?i)\burgent care\b`)},
			{Name: "Therapy", Pattern: regexp.MustCompile(`(?i)\b(therap(y|ist)|counsel)`)},
		},
		CTAs:         []string{"Book Today", "Start Online", "Schedule a Visit"},
		CTRBenchmark: 0.035,
		CVRBenchmark: 0.04,
	}
}

func legalRuleSet() RuleSet {
	return RuleSet{
		Vertical:        Legal,
		ImperativeVerbs: []string{"call", "hire", "sue", "get", "contact", "win", "talk", "book", "start"},
		IntentVerbs:     []string{"Call", "Hire", "Contact"},
		ForbiddenPairs: []ForbiddenPair{
			{Verb: "win", ObjectPattern: regexp.MustCompile(`(?i)\b(your case|case|settlement|lawsuit|claim)\b`), Reason: "promessa de resultado jurídico", Example: "your case"},
			{Verb: "get", ObjectPattern: regexp.MustCompile(`(?i)\b(guaranteed|maximum) (settlement|compensation|payout)\b`), Reason: "garantia de indenização", Example: "maximum compensation"},
		},
		ProblemToSolution: map[string][]string{
			"win": {"Discuss", "Review"},
			"get": {"Review", "Discuss"},
		},
		ErrorClaims: []Claim{
			{Pattern: regexp.MustCompile(`(?i)\bguaranteed (win|results?|settlement|outcome)\b`), Reason: "garantia de resultado proibida para advocacia", Suggestion: "Experienced Counsel"},
			{Pattern: regexp.MustCompile(`(?i)\b(we never lose|100% success)\b`), Reason: "histórico absoluto não comprovável", Suggestion: "Proven Track Record"},
		},
		WarnClaims: []Claim{
			{Pattern: regexp.MustCompile(`(?i)(#1|\bbest\b|\btop\b) (lawyers?|attorneys?|law firm)\b`), Reason: "superlativo profissional sem comprovação", Suggestion: "Trusted Attorneys"},
			{Pattern: regexp.MustCompile(`(?i)\bspecialists?\b`), Reason: "título de especialista depende de certificação", Suggestion: "Focused"},
		},
		Signals: []string{
			"lawyer", "lawyers", "attorney", "attorneys", "law firm", "legal", "injury", "accident",
			"dui", "divorce", "lawsuit", "settlement", "custody",
		},
		Categories: []CategoryRule{
			{Name: "Personal Injury", Pattern: regexp.MustCompile(`(?i)\b(injur(y|ies)|accident)`)},
			{Name: "DUI Defense", Pattern: regexp.MustCompile(`(?i)\b(dui|dwi)\b`)},
			{Name: "Family Law", Pattern: regexp.MustCompile(`(?i)\b(divorce|custody|family law)\b`)},
			{Name: "Criminal Defense", Pattern: regexp.MustCompile(`(?i)\bcriminal\b`)},
		},
		CTAs:         []string{"Call Today", "Free Case Review", "Talk to a Lawyer"},
		CTRBenchmark: 0.029,
		CVRBenchmark: 0.03,
	}
}

func homeServicesRuleSet() RuleSet {
	return RuleSet{
		Vertical:        HomeServices,
		ImperativeVerbs: []string{"call", "book", "schedule", "get", "fix", "hire", "request"},
		IntentVerbs:     []string{"Book", "Schedule", "Call"},
		ForbiddenPairs: []ForbiddenPair{
			{Verb: "hire", ObjectPattern: regexp.MustCompile(`(?i)\bunlicensed\b`), Reason: "contratação de profissional sem licença", Example: "unlicensed plumbers"},
			{Verb: "get", ObjectPattern: regexp.MustCompile(`(?i)\b(permit-free|no permit)\b`), Reason: "dispensa de alvará de obra", Example: "no permit remodels"},
		},
		ProblemToSolution: map[string][]string{
			"hire": {"Book"},
			"get":  {"Request"},
		},
		ErrorClaims: []Claim{
			{Pattern: regexp.MustCompile(`(?i)\b(government approved|epa certified)\b`), Reason: "certificação não verificável", Suggestion: "Licensed & Insured"},
			{Pattern: regexp.MustCompile(`(?i)\bnever (breaks|fails)\b`), Reason: "durabilidade absoluta não comprovável", Suggestion: "Built to Last"},
		},
		WarnClaims: []Claim{
			{Pattern: regexp.MustCompile(`(?i)\b(cheapest|lowest price)\b`), Reason: "comparação de preço sem comprovação", Suggestion: "Fair Pricing"},
		},
		Signals: []string{
			"plumber", "plumbing", "hvac", "roofing", "roofer", "electrician", "repair", "contractor",
			"installation", "furnace", "water heater", "pest control", "cleaning", "landscaping", "drain",
		},
		Categories: []CategoryRule{
			{Name: "Plumbing", Pattern: regexp.MustCompile(`(?i)\b(plumb|drain|water heater)`)},
			{Name: "HVAC Repair", Pattern: regexp.MustCompile(`(?i)\b(hvac|furnace|air condition|ac repair)`)},
			{Name: "Roofing", Pattern: regexp.MustCompile(`(?i)\broof`)},
			{Name: "Electrical", Pattern: regexp.MustCompile(`(?i)\belectric`)},
		},
		CTAs:         []string{"Book Online", "Call Now", "Schedule Service"},
		CTRBenchmark: 0.04,
		CVRBenchmark: 0.05,
	}
}

func automotiveRuleSet() RuleSet {
	return RuleSet{
		Vertical:        Automotive,
		ImperativeVerbs: []string{"buy", "shop", "drive", "lease", "finance", "test", "get", "browse", "visit", "explore"},
		IntentVerbs:     []string{"Shop", "Explore"},
		ForbiddenPairs: []ForbiddenPair{
			{Verb: "get", ObjectPattern: regexp.MustCompile(`(?i)\bguaranteed (approval|financing|credit)\b`), Reason: "garantia de aprovação de crédito", Example: "guaranteed approval"},
			{Verb: "finance", ObjectPattern: regexp.MustCompile(`(?i)\bno credit check\b`), Reason: "financiamento sem análise de crédito", Example: "with no credit check"},
		},
		ProblemToSolution: map[string][]string{
			"get":     {"Explore"},
			"finance": {"Explore"},
		},
		ErrorClaims: []Claim{
			{Pattern: regexp.MustCompile(`(?i)\b(guaranteed (credit )?approval|no credit check)\b`), Reason: "promessa de crédito proibida", Suggestion: "Flexible Financing"},
		},
		WarnClaims: []Claim{
			{Pattern: regexp.MustCompile(`(?i)\$0 down\b`), Reason: "oferta de entrada zero exige condições", Suggestion: "Low Down Payment"},
			{Pattern: regexp.MustCompile(`(?i)\b(lowest prices?|best deals?)\b`), Reason: "comparação de preço sem comprovação", Suggestion: "Great Deals"},
		},
		Signals: []string{
			"dealer", "dealership", "car", "cars", "truck", "trucks", "suv", "lease", "ford", "toyota",
			"honda", "chevrolet", "chevy", "used cars", "auto", "test drive",
		},
		Categories: []CategoryRule{
			{Name: "Trucks", Pattern: regexp.MustCompile(`(?i)\b(trucks?|pickups?|f-150|silverado|tacoma)\b`)},
			{Name: "SUVs", Pattern: regexp.MustCompile(`(?i)\b(suvs?|crossovers?|rav4)\b`)},
			{Name: "Used Cars", Pattern: regexp.MustCompile(`(?i)\b(used|pre-owned|certified)\b`)},
			{Name: "New Cars", Pattern: regexp.MustCompile(`(?i)\bnew cars?\b`)},
			{Name: "Auto Service", Pattern: regexp.MustCompile(`(?i)\b(oil change|service center|auto repair)\b`)},
		},
		CTAs:         []string{"Visit Today", "Shop Inventory", "Book a Test Drive"},
		CTRBenchmark: 0.04,
		CVRBenchmark: 0.03,
	}
}

func ecommerceRuleSet() RuleSet {
	fakes := regexp.MustCompile(`(?i)\b(replicas?|counterfeits?|fakes?)\b`)

	return RuleSet{
		Vertical:        Ecommerce,
		ImperativeVerbs: []string{"buy", "shop", "order", "get", "save", "grab", "discover", "browse", "try"},
		IntentVerbs:     []string{"Shop", "Discover"},
		ForbiddenPairs: []ForbiddenPair{
			{Verb: "buy", ObjectPattern: fakes, Reason: "venda de produto falsificado", Example: "replica watches"},
			{Verb: "order", ObjectPattern: fakes, Reason: "venda de produto falsificado", Example: "counterfeit bags"},
		},
		ProblemToSolution: map[string][]string{
			"buy":   {"Shop"},
			"order": {"Shop"},
		},
		ErrorClaims: []Claim{
			{Pattern: regexp.MustCompile(`(?i)\b(counterfeit|replica|knock-?off)s?\b`), Reason: "produto falsificado"},
		},
		WarnClaims: []Claim{
			{Pattern: regexp.MustCompile(`(?i)\bfree\b`), Reason: "gratuidade sem condições declaradas", Suggestion: "Free Shipping Over $50"},
			{Pattern: regexp.MustCompile(`(?i)(#1|\bbest\b|\bcheapest\b)`), Reason: "superlativo sem comprovação", Suggestion: "Top Picks"},
		},
		Signals: []string{
			"shop", "buy", "online", "store", "sale", "shoes", "sneakers", "clothing", "shipping",
			"order", "deals", "apparel",
		},
		Categories: []CategoryRule{
			{Name: "Running Shoes", Pattern: regexp.MustCompile(`(?i)\b(running shoes?|runners)\b`)},
			{Name: "Sneakers", Pattern: regexp.MustCompile(`(?i)\bsneakers?\b`)},
			{Name: "Shoes", Pattern: regexp.MustCompile(`(?i)\bshoes?\b`)},
			{Name: "Apparel", Pattern: regexp.MustCompile(`(?i)\b(clothing|apparel|shirts?|dress(es)?)\b`)},
			{Name: "Electronics", Pattern: regexp.MustCompile(`(?i)\b(laptops?|phones?|headphones?|tvs?)\b`)},
		},
		CTAs:         []string{"Shop Now", "Order Today", "Browse the Sale"},
		CTRBenchmark: 0.035,
		CVRBenchmark: 0.03,
	}
}
