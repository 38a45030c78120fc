package services

import "finsight/internal/models"

// seedTrainingData is the bundled corpus the classifier trains from when
// no persisted model exists. It spans every category and is a fixed seed,
// not derived from user data.
func seedTrainingData() []models.TrainingExample {
	return []models.TrainingExample{
		// Salary
		{Title: "Employee salary payment", Description: "Monthly payroll", Category: models.CategorySalary},
		{Title: "Bonus payment", Description: "Performance bonus", Category: models.CategorySalary},
		{Title: "Overtime payment", Description: "Extra hours payment", Category: models.CategorySalary},
		{Title: "Salary advance", Description: "Employee advance salary", Category: models.CategorySalary},

		// Rent
		{Title: "Office rent", Description: "Monthly office space rental", Category: models.CategoryRent},
		{Title: "Building lease", Description: "Commercial property rent", Category: models.CategoryRent},
		{Title: "Warehouse rent", Description: "Storage facility rental", Category: models.CategoryRent},

		// Utilities
		{Title: "Electricity bill", Description: "Monthly power consumption", Category: models.CategoryUtilities},
		{Title: "Water bill", Description: "Monthly water charges", Category: models.CategoryUtilities},
		{Title: "Internet bill", Description: "Broadband connection", Category: models.CategoryUtilities},
		{Title: "Phone bill", Description: "Office telephone charges", Category: models.CategoryUtilities},

		// Marketing
		{Title: "Facebook ads", Description: "Social media marketing", Category: models.CategoryMarketing},
		{Title: "Google Adwords", Description: "Online advertising", Category: models.CategoryMarketing},
		{Title: "Print advertisement", Description: "Newspaper ad campaign", Category: models.CategoryMarketing},
		{Title: "SEO services", Description: "Search engine optimization", Category: models.CategoryMarketing},
		{Title: "Content creation", Description: "Blog and article writing", Category: models.CategoryMarketing},

		// Software
		{Title: "Microsoft 365", Description: "Office software subscription", Category: models.CategorySoftware},
		{Title: "AWS bill", Description: "Cloud hosting charges", Category: models.CategorySoftware},
		{Title: "Salesforce subscription", Description: "CRM software", Category: models.CategorySoftware},
		{Title: "Adobe Creative Cloud", Description: "Design software", Category: models.CategorySoftware},
		{Title: "Slack subscription", Description: "Team communication tool", Category: models.CategorySoftware},

		// Hardware
		{Title: "Laptop purchase", Description: "Employee workstation", Category: models.CategoryHardware},
		{Title: "Server purchase", Description: "Data center equipment", Category: models.CategoryHardware},
		{Title: "Office furniture", Description: "Desks and chairs", Category: models.CategoryHardware},
		{Title: "Printer purchase", Description: "Office equipment", Category: models.CategoryHardware},

		// Travel
		{Title: "Flight tickets", Description: "Business travel", Category: models.CategoryTravel},
		{Title: "Hotel booking", Description: "Accommodation", Category: models.CategoryTravel},
		{Title: "Uber ride", Description: "Local transportation", Category: models.CategoryTravel},
		{Title: "Fuel expense", Description: "Vehicle fuel", Category: models.CategoryTravel},

		// Office Supplies
		{Title: "Stationery", Description: "Pens, papers, folders", Category: models.CategoryOfficeSupplies},
		{Title: "Printer paper", Description: "Office printing supplies", Category: models.CategoryOfficeSupplies},
		{Title: "Coffee supplies", Description: "Office pantry items", Category: models.CategoryOfficeSupplies},

		// Insurance
		{Title: "Health insurance", Description: "Employee medical coverage", Category: models.CategoryInsurance},
		{Title: "Property insurance", Description: "Office building insurance", Category: models.CategoryInsurance},
		{Title: "Vehicle insurance", Description: "Company vehicle coverage", Category: models.CategoryInsurance},

		// Legal
		{Title: "Legal consultation", Description: "Attorney fees", Category: models.CategoryLegal},
		{Title: "Patent filing", Description: "Intellectual property", Category: models.CategoryLegal},
		{Title: "Contract review", Description: "Legal document review", Category: models.CategoryLegal},

		// Training
		{Title: "Online course", Description: "Employee skill development", Category: models.CategoryTraining},
		{Title: "Conference ticket", Description: "Professional development", Category: models.CategoryTraining},
		{Title: "Workshop fees", Description: "Team training program", Category: models.CategoryTraining},

		// Entertainment
		{Title: "Team lunch", Description: "Employee meal", Category: models.CategoryEntertainment},
		{Title: "Office party", Description: "Company celebration", Category: models.CategoryEntertainment},
		{Title: "Client dinner", Description: "Business entertainment", Category: models.CategoryEntertainment},

		// Maintenance
		{Title: "AC repair", Description: "Air conditioning service", Category: models.CategoryMaintenance},
		{Title: "Computer repair", Description: "IT equipment maintenance", Category: models.CategoryMaintenance},
		{Title: "Office cleaning", Description: "Janitorial services", Category: models.CategoryMaintenance},
	}
}
