package geo

// countries holds approximate country centroids. Aliases cover common short
// names and demonyms used in headlines.
var countries = []Place{
	{Name: "Afghanistan", Lat: 33.94, Lon: 67.71, Aliases: []string{"Afghan"}},
	{Name: "Algeria", Lat: 28.03, Lon: 1.66, Aliases: []string{"Algerian"}},
	{Name: "Argentina", Lat: -38.42, Lon: -63.62, Aliases: []string{"Argentine", "Argentinian"}},
	{Name: "Armenia", Lat: 40.07, Lon: 45.04, Aliases: []string{"Armenian"}},
	{Name: "Australia", Lat: -25.27, Lon: 133.78, Aliases: []string{"Australian"}},
	{Name: "Azerbaijan", Lat: 40.14, Lon: 47.58, Aliases: []string{"Azerbaijani"}},
	{Name: "Bangladesh", Lat: 23.68, Lon: 90.36, Aliases: []string{"Bangladeshi"}},
	{Name: "Belarus", Lat: 53.71, Lon: 27.95, Aliases: []string{"Belarusian"}},
	{Name: "Bolivia", Lat: -16.29, Lon: -63.59, Aliases: []string{"Bolivian"}},
	{Name: "Brazil", Lat: -14.24, Lon: -51.93, Aliases: []string{"Brazilian"}},
	{Name: "Burkina Faso", Lat: 12.24, Lon: -1.56},
	{Name: "Cameroon", Lat: 7.37, Lon: 12.35, Aliases: []string{"Cameroonian"}},
	{Name: "Canada", Lat: 56.13, Lon: -106.35, Aliases: []string{"Canadian"}},
	{Name: "Central African Republic", Lat: 6.61, Lon: 20.94},
	{Name: "Chad", Lat: 15.45, Lon: 18.73, Aliases: []string{"Chadian"}},
	{Name: "Chile", Lat: -35.68, Lon: -71.54, Aliases: []string{"Chilean"}},
	{Name: "China", Lat: 35.86, Lon: 104.2, Aliases: []string{"Chinese"}},
	{Name: "Colombia", Lat: 4.57, Lon: -74.3, Aliases: []string{"Colombian"}},
	{Name: "Democratic Republic of the Congo", Lat: -4.04, Lon: 21.76, Aliases: []string{"DR Congo", "DRC", "Congo"}},
	{Name: "Cuba", Lat: 21.52, Lon: -77.78, Aliases: []string{"Cuban"}},
	{Name: "Ecuador", Lat: -1.83, Lon: -78.18, Aliases: []string{"Ecuadorian"}},
	{Name: "Egypt", Lat: 26.82, Lon: 30.8, Aliases: []string{"Egyptian"}},
	{Name: "Eritrea", Lat: 15.18, Lon: 39.78, Aliases: []string{"Eritrean"}},
	{Name: "Ethiopia", Lat: 9.15, Lon: 40.49, Aliases: []string{"Ethiopian"}},
	{Name: "France", Lat: 46.23, Lon: 2.21, Aliases: []string{"French"}},
	{Name: "Georgia", Lat: 42.32, Lon: 43.36, Aliases: []string{"Georgian"}},
	{Name: "Germany", Lat: 51.17, Lon: 10.45, Aliases: []string{"German"}},
	{Name: "Ghana", Lat: 7.95, Lon: -1.02, Aliases: []string{"Ghanaian"}},
	{Name: "Greece", Lat: 39.07, Lon: 21.82, Aliases: []string{"Greek"}},
	{Name: "Guatemala", Lat: 15.78, Lon: -90.23},
	{Name: "Haiti", Lat: 18.97, Lon: -72.29, Aliases: []string{"Haitian"}},
	{Name: "Honduras", Lat: 15.2, Lon: -86.24},
	{Name: "India", Lat: 20.59, Lon: 78.96, Aliases: []string{"Indian"}},
	{Name: "Indonesia", Lat: -0.79, Lon: 113.92, Aliases: []string{"Indonesian"}},
	{Name: "Iran", Lat: 32.43, Lon: 53.69, Aliases: []string{"Iranian"}},
	{Name: "Iraq", Lat: 33.22, Lon: 43.68, Aliases: []string{"Iraqi"}},
	{Name: "Israel", Lat: 31.05, Lon: 34.85, Aliases: []string{"Israeli"}},
	{Name: "Italy", Lat: 41.87, Lon: 12.57, Aliases: []string{"Italian"}},
	{Name: "Japan", Lat: 36.2, Lon: 138.25, Aliases: []string{"Japanese"}},
	{Name: "Jordan", Lat: 30.59, Lon: 36.24, Aliases: []string{"Jordanian"}},
	{Name: "Kazakhstan", Lat: 48.02, Lon: 66.92},
	{Name: "Kenya", Lat: -0.02, Lon: 37.91, Aliases: []string{"Kenyan"}},
	{Name: "Kosovo", Lat: 42.6, Lon: 20.9},
	{Name: "Kyrgyzstan", Lat: 41.2, Lon: 74.77},
	{Name: "Lebanon", Lat: 33.85, Lon: 35.86, Aliases: []string{"Lebanese"}},
	{Name: "Libya", Lat: 26.34, Lon: 17.23, Aliases: []string{"Libyan"}},
	{Name: "Mali", Lat: 17.57, Lon: -4.0, Aliases: []string{"Malian"}},
	{Name: "Mexico", Lat: 23.63, Lon: -102.55, Aliases: []string{"Mexican"}},
	{Name: "Moldova", Lat: 47.41, Lon: 28.37, Aliases: []string{"Moldovan"}},
	{Name: "Morocco", Lat: 31.79, Lon: -7.09, Aliases: []string{"Moroccan"}},
	{Name: "Mozambique", Lat: -18.67, Lon: 35.53},
	{Name: "Myanmar", Lat: 21.91, Lon: 95.96, Aliases: []string{"Burma", "Burmese"}},
	{Name: "Nepal", Lat: 28.39, Lon: 84.12, Aliases: []string{"Nepalese"}},
	{Name: "Nicaragua", Lat: 12.87, Lon: -85.21},
	{Name: "Niger", Lat: 17.61, Lon: 8.08},
	{Name: "Nigeria", Lat: 9.08, Lon: 8.68, Aliases: []string{"Nigerian"}},
	{Name: "North Korea", Lat: 40.34, Lon: 127.51, Aliases: []string{"DPRK", "Pyongyang"}},
	{Name: "Oman", Lat: 21.47, Lon: 55.98, Aliases: []string{"Omani"}},
	{Name: "Pakistan", Lat: 30.38, Lon: 69.35, Aliases: []string{"Pakistani"}},
	{Name: "Palestine", Lat: 31.95, Lon: 35.23, Aliases: []string{"Palestinian", "West Bank"}},
	{Name: "Peru", Lat: -9.19, Lon: -75.02, Aliases: []string{"Peruvian"}},
	{Name: "Philippines", Lat: 12.88, Lon: 121.77, Aliases: []string{"Filipino", "Philippine"}},
	{Name: "Poland", Lat: 51.92, Lon: 19.15, Aliases: []string{"Polish"}},
	{Name: "Russia", Lat: 61.52, Lon: 105.32, Aliases: []string{"Russian", "Kremlin"}},
	{Name: "Rwanda", Lat: -1.94, Lon: 29.87, Aliases: []string{"Rwandan"}},
	{Name: "Saudi Arabia", Lat: 23.89, Lon: 45.08, Aliases: []string{"Saudi"}},
	{Name: "Serbia", Lat: 44.02, Lon: 21.01, Aliases: []string{"Serbian"}},
	{Name: "Somalia", Lat: 5.15, Lon: 46.2, Aliases: []string{"Somali"}},
	{Name: "South Africa", Lat: -30.56, Lon: 22.94, Aliases: []string{"South African"}},
	{Name: "South Korea", Lat: 35.91, Lon: 127.77, Aliases: []string{"South Korean"}},
	{Name: "South Sudan", Lat: 6.88, Lon: 31.31, Aliases: []string{"South Sudanese"}},
	{Name: "Spain", Lat: 40.46, Lon: -3.75, Aliases: []string{"Spanish"}},
	{Name: "Sri Lanka", Lat: 7.87, Lon: 80.77, Aliases: []string{"Sri Lankan"}},
	{Name: "Sudan", Lat: 12.86, Lon: 30.22, Aliases: []string{"Sudanese"}},
	{Name: "Syria", Lat: 34.8, Lon: 38.99, Aliases: []string{"Syrian"}},
	{Name: "Taiwan", Lat: 23.7, Lon: 120.96, Aliases: []string{"Taiwanese"}},
	{Name: "Tajikistan", Lat: 38.86, Lon: 71.28},
	{Name: "Thailand", Lat: 15.87, Lon: 100.99, Aliases: []string{"Thai"}},
	{Name: "Tunisia", Lat: 33.89, Lon: 9.54, Aliases: []string{"Tunisian"}},
	{Name: "Turkey", Lat: 38.96, Lon: 35.24, Aliases: []string{"Turkish", "Türkiye"}},
	{Name: "Uganda", Lat: 1.37, Lon: 32.29, Aliases: []string{"Ugandan"}},
	{Name: "Ukraine", Lat: 48.38, Lon: 31.17, Aliases: []string{"Ukrainian"}},
	{Name: "United Kingdom", Lat: 55.38, Lon: -3.44, Aliases: []string{"UK", "Britain", "British"}},
	{Name: "United States", Lat: 37.09, Lon: -95.71, Aliases: []string{"USA"}},
	{Name: "Venezuela", Lat: 6.42, Lon: -66.59, Aliases: []string{"Venezuelan"}},
	{Name: "Yemen", Lat: 15.55, Lon: 48.52, Aliases: []string{"Yemeni", "Houthi", "Houthis"}},
	{Name: "Zimbabwe", Lat: -19.02, Lon: 29.15},
}

// cities holds conflict-relevant cities with their country
var cities = []Place{
	{Name: "Kabul", Country: "Afghanistan", Lat: 34.56, Lon: 69.21},
	{Name: "Yerevan", Country: "Armenia", Lat: 40.18, Lon: 44.51},
	{Name: "Baku", Country: "Azerbaijan", Lat: 40.41, Lon: 49.87},
	{Name: "Dhaka", Country: "Bangladesh", Lat: 23.81, Lon: 90.41},
	{Name: "Minsk", Country: "Belarus", Lat: 53.9, Lon: 27.57},
	{Name: "Ouagadougou", Country: "Burkina Faso", Lat: 12.37, Lon: -1.52},
	{Name: "Bangui", Country: "Central African Republic", Lat: 4.39, Lon: 18.56},
	{Name: "Beijing", Country: "China", Lat: 39.9, Lon: 116.41},
	{Name: "Hong Kong", Country: "China", Lat: 22.32, Lon: 114.17},
	{Name: "Bogota", Country: "Colombia", Lat: 4.71, Lon: -74.07},
	{Name: "Goma", Country: "Democratic Republic of the Congo", Lat: -1.68, Lon: 29.22},
	{Name: "Kinshasa", Country: "Democratic Republic of the Congo", Lat: -4.44, Lon: 15.27},
	{Name: "Cairo", Country: "Egypt", Lat: 30.04, Lon: 31.24},
	{Name: "Addis Ababa", Country: "Ethiopia", Lat: 9.03, Lon: 38.74},
	{Name: "Paris", Country: "France", Lat: 48.86, Lon: 2.35},
	{Name: "Tbilisi", Country: "Georgia", Lat: 41.72, Lon: 44.78},
	{Name: "Berlin", Country: "Germany", Lat: 52.52, Lon: 13.4},
	{Name: "Port-au-Prince", Country: "Haiti", Lat: 18.59, Lon: -72.31},
	{Name: "New Delhi", Country: "India", Lat: 28.61, Lon: 77.21},
	{Name: "Kashmir", Country: "India", Lat: 34.08, Lon: 74.8},
	{Name: "Tehran", Country: "Iran", Lat: 35.69, Lon: 51.39},
	{Name: "Baghdad", Country: "Iraq", Lat: 33.31, Lon: 44.36},
	{Name: "Mosul", Country: "Iraq", Lat: 36.34, Lon: 43.13},
	{Name: "Erbil", Country: "Iraq", Lat: 36.19, Lon: 44.01},
	{Name: "Jerusalem", Country: "Israel", Lat: 31.77, Lon: 35.21},
	{Name: "Tel Aviv", Country: "Israel", Lat: 32.09, Lon: 34.78},
	{Name: "Gaza", Country: "Palestine", Lat: 31.5, Lon: 34.47},
	{Name: "Rafah", Country: "Palestine", Lat: 31.3, Lon: 34.25},
	{Name: "Ramallah", Country: "Palestine", Lat: 31.9, Lon: 35.2},
	{Name: "Beirut", Country: "Lebanon", Lat: 33.89, Lon: 35.5},
	{Name: "Tripoli", Country: "Libya", Lat: 32.89, Lon: 13.19},
	{Name: "Benghazi", Country: "Libya", Lat: 32.12, Lon: 20.09},
	{Name: "Bamako", Country: "Mali", Lat: 12.64, Lon: -8.0},
	{Name: "Mexico City", Country: "Mexico", Lat: 19.43, Lon: -99.13},
	{Name: "Culiacan", Country: "Mexico", Lat: 24.81, Lon: -107.39},
	{Name: "Yangon", Country: "Myanmar", Lat: 16.84, Lon: 96.17},
	{Name: "Naypyidaw", Country: "Myanmar", Lat: 19.76, Lon: 96.08},
	{Name: "Kathmandu", Country: "Nepal", Lat: 27.72, Lon: 85.32},
	{Name: "Niamey", Country: "Niger", Lat: 13.51, Lon: 2.13},
	{Name: "Abuja", Country: "Nigeria", Lat: 9.08, Lon: 7.4},
	{Name: "Lagos", Country: "Nigeria", Lat: 6.52, Lon: 3.38},
	{Name: "Islamabad", Country: "Pakistan", Lat: 33.68, Lon: 73.05},
	{Name: "Karachi", Country: "Pakistan", Lat: 24.86, Lon: 67.0},
	{Name: "Lima", Country: "Peru", Lat: -12.05, Lon: -77.04},
	{Name: "Manila", Country: "Philippines", Lat: 14.6, Lon: 120.98},
	{Name: "Warsaw", Country: "Poland", Lat: 52.23, Lon: 21.01},
	{Name: "Moscow", Country: "Russia", Lat: 55.76, Lon: 37.62},
	{Name: "St Petersburg", Country: "Russia", Lat: 59.93, Lon: 30.36},
	{Name: "Belgorod", Country: "Russia", Lat: 50.6, Lon: 36.59},
	{Name: "Kursk", Country: "Russia", Lat: 51.73, Lon: 36.19},
	{Name: "Riyadh", Country: "Saudi Arabia", Lat: 24.71, Lon: 46.68},
	{Name: "Belgrade", Country: "Serbia", Lat: 44.79, Lon: 20.45},
	{Name: "Mogadishu", Country: "Somalia", Lat: 2.05, Lon: 45.32},
	{Name: "Seoul", Country: "South Korea", Lat: 37.57, Lon: 126.98},
	{Name: "Juba", Country: "South Sudan", Lat: 4.86, Lon: 31.57},
	{Name: "Khartoum", Country: "Sudan", Lat: 15.5, Lon: 32.56},
	{Name: "Omdurman", Country: "Sudan", Lat: 15.64, Lon: 32.48},
	{Name: "El Fasher", Country: "Sudan", Lat: 13.63, Lon: 25.35},
	{Name: "Darfur", Country: "Sudan", Lat: 13.5, Lon: 24.0},
	{Name: "Damascus", Country: "Syria", Lat: 33.51, Lon: 36.28},
	{Name: "Aleppo", Country: "Syria", Lat: 36.2, Lon: 37.13},
	{Name: "Idlib", Country: "Syria", Lat: 35.93, Lon: 36.63},
	{Name: "Taipei", Country: "Taiwan", Lat: 25.03, Lon: 121.57},
	{Name: "Bangkok", Country: "Thailand", Lat: 13.76, Lon: 100.5},
	{Name: "Istanbul", Country: "Turkey", Lat: 41.01, Lon: 28.98},
	{Name: "Ankara", Country: "Turkey", Lat: 39.93, Lon: 32.86},
	{Name: "Kyiv", Country: "Ukraine", Lat: 50.45, Lon: 30.52, Aliases: []string{"Kiev"}},
	{Name: "Kharkiv", Country: "Ukraine", Lat: 49.99, Lon: 36.23},
	{Name: "Odesa", Country: "Ukraine", Lat: 46.48, Lon: 30.72, Aliases: []string{"Odessa"}},
	{Name: "Donetsk", Country: "Ukraine", Lat: 48.02, Lon: 37.8},
	{Name: "Zaporizhzhia", Country: "Ukraine", Lat: 47.84, Lon: 35.14},
	{Name: "Kherson", Country: "Ukraine", Lat: 46.64, Lon: 32.62},
	{Name: "London", Country: "United Kingdom", Lat: 51.51, Lon: -0.13},
	{Name: "Washington", Country: "United States", Lat: 38.91, Lon: -77.04},
	{Name: "New York", Country: "United States", Lat: 40.71, Lon: -74.01},
	{Name: "Los Angeles", Country: "United States", Lat: 34.05, Lon: -118.24},
	{Name: "Caracas", Country: "Venezuela", Lat: 10.48, Lon: -66.9},
	{Name: "Sanaa", Country: "Yemen", Lat: 15.37, Lon: 44.19, Aliases: []string{"Sana'a"}},
	{Name: "Aden", Country: "Yemen", Lat: 12.79, Lon: 45.02},
}
